package util

import "errors"

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")

	ErrInvalidFileType  = errors.New("the uploaded file does not appear to be a valid resume, please upload a PDF document")
	ErrEmptyExtraction  = errors.New("could not extract text from the PDF")
	ErrNotAResume       = errors.New("the uploaded file does not seem to be a resume")
	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrWrongState       = errors.New("operation not allowed in the current assessment state")
	ErrNoRecommendation = errors.New("no recommendations yet, upload a resume or take the assessment first")
	ErrRoleNotFound     = errors.New("career role not found")
)
