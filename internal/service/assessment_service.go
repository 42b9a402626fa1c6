package service

import (
	"career_compass_backend/internal/ai"
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/util"
	"career_compass_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 自述段落的字数边界
const (
	reflectionMinWords = 50
	reflectionMaxWords = 300
)

// PsychometricAI 向导依赖的AI能力
type PsychometricAI interface {
	GeneratePsychometricTest(ctx context.Context, segment string, details ai.SegmentDetails) (*ai.PsychometricTestOutput, error)
	EvaluatePsychometricTest(ctx context.Context, segment string, details ai.SegmentDetails, answers []ai.TestAnswer, reflection string) (*ai.EvaluationOutput, error)
}

// PsychometricStore 向导会话与报告的持久化能力
type PsychometricStore interface {
	CreateSession(session *model.PsychometricSession) error
	FindSession(id string) (*model.PsychometricSession, error)
	FindLatestSessionByUser(userID uint) (*model.PsychometricSession, error)
	UpdateSession(session *model.PsychometricSession) error
	SaveResult(result *model.PsychometricResult) error
	FindResultByUserID(userID uint) (*model.PsychometricResult, error)
}

// AssessmentService 心理测评向导状态机。
// 会话沿 selecting-segment → collecting-details → generating-test →
// answering-test → collecting-reflection → evaluating → done 推进；
// AI环节失败时回退到上一个可交互状态，已填数据不丢失。
type AssessmentService struct {
	AI               PsychometricAI
	PsychometricRepo PsychometricStore
}

func NewAssessmentService(aiClient PsychometricAI, psychometricRepo PsychometricStore) *AssessmentService {
	return &AssessmentService{
		AI:               aiClient,
		PsychometricRepo: psychometricRepo,
	}
}

// StartSession 有未完成会话则续用，否则新建
func (s *AssessmentService) StartSession(userID uint) (*model.PsychometricSession, error) {
	session, err := s.PsychometricRepo.FindLatestSessionByUser(userID)
	if err == nil && session.State != model.StateDone {
		return session, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session = &model.PsychometricSession{
		UserID: userID,
		State:  model.StateSelectingSegment,
	}
	if err := s.PsychometricRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AssessmentService) GetSession(userID uint, sessionID string) (*model.PsychometricSession, error) {
	session, err := s.PsychometricRepo.FindSession(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

// SelectSegment 选择人群分支
func (s *AssessmentService) SelectSegment(userID uint, sessionID string, segment model.UserSegment) (*model.PsychometricSession, error) {
	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != model.StateSelectingSegment {
		return nil, util.ErrWrongState
	}
	if !segment.Valid() {
		return nil, fmt.Errorf("unknown user segment %q", segment)
	}

	session.Segment = segment
	session.State = model.StateCollectingDetails
	if err := s.PsychometricRepo.UpdateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// validateDetails 各分支必填字段检查
func validateDetails(segment model.UserSegment, d ai.SegmentDetails) error {
	switch segment {
	case model.SegmentKid:
		if d.Grade == "" {
			return errors.New("grade is required")
		}
	case model.SegmentSchoolStudent:
		if d.Grade == "" {
			return errors.New("grade is required")
		}
	case model.SegmentCollege:
		if d.FieldOfStudy == "" {
			return errors.New("fieldOfStudy is required")
		}
	case model.SegmentProfessional:
		if d.Experience == "" || d.Role == "" || d.Industry == "" {
			return errors.New("experience, role and industry are required")
		}
	}
	return nil
}

// SubmitDetails 提交分支信息并触发出题；出题失败回到collecting-details
func (s *AssessmentService) SubmitDetails(ctx context.Context, userID uint, sessionID string, details ai.SegmentDetails) (*model.PsychometricSession, error) {
	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	// generating-test是瞬态：进程在AI调用中途终止会把会话留在这里，
	// 允许重新提交信息直接重试
	if session.State != model.StateCollectingDetails && session.State != model.StateGeneratingTest {
		return nil, util.ErrWrongState
	}
	if err := validateDetails(session.Segment, details); err != nil {
		return nil, err
	}

	raw, _ := json.Marshal(details)
	session.Details = raw
	session.State = model.StateGeneratingTest
	if err := s.PsychometricRepo.UpdateSession(session); err != nil {
		return nil, err
	}

	test, err := s.AI.GeneratePsychometricTest(ctx, string(session.Segment), details)
	if err != nil {
		// 回退，保留已填信息等待重试
		session.State = model.StateCollectingDetails
		if rbErr := s.PsychometricRepo.UpdateSession(session); rbErr != nil {
			logger.Log.Error("测评会话回退写入失败",
				zap.String("sessionID", session.ID), zap.Error(rbErr))
		}
		return nil, err
	}

	questions, _ := json.Marshal(test.Questions)
	session.Questions = questions
	session.State = model.StateAnsweringTest
	if err := s.PsychometricRepo.UpdateSession(session); err != nil {
		return nil, err
	}

	logger.Log.Info("测评卷已生成",
		zap.String("sessionID", session.ID),
		zap.Int("questions", len(test.Questions)),
	)
	return session, nil
}

// SubmitAnswers 要求全部题目作答后进入自述环节
func (s *AssessmentService) SubmitAnswers(userID uint, sessionID string, answers []ai.TestAnswer) (*model.PsychometricSession, error) {
	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != model.StateAnsweringTest {
		return nil, util.ErrWrongState
	}

	var questions []ai.TestQuestion
	if err := json.Unmarshal(session.Questions, &questions); err != nil {
		return nil, err
	}
	if len(answers) != len(questions) {
		return nil, fmt.Errorf("expected %d answers, got %d", len(questions), len(answers))
	}
	for i, a := range answers {
		if strings.TrimSpace(a.Answer) == "" {
			return nil, fmt.Errorf("answer %d is empty", i+1)
		}
	}

	raw, _ := json.Marshal(answers)
	session.Answers = raw
	session.State = model.StateCollectingReflection
	if err := s.PsychometricRepo.UpdateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitReflection 提交自述并触发评估；评估失败回到collecting-reflection，
// 作答与自述均保留
func (s *AssessmentService) SubmitReflection(ctx context.Context, userID uint, sessionID string, reflection string) (*model.PsychometricSession, error) {
	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	// evaluating同样是瞬态，滞留会话允许重新提交自述重试
	if session.State != model.StateCollectingReflection && session.State != model.StateEvaluating {
		return nil, util.ErrWrongState
	}

	words := len(strings.Fields(reflection))
	if words < reflectionMinWords || words > reflectionMaxWords {
		return nil, fmt.Errorf("personal statement must be between %d and %d words, got %d", reflectionMinWords, reflectionMaxWords, words)
	}

	session.Reflection = reflection
	session.State = model.StateEvaluating
	if err := s.PsychometricRepo.UpdateSession(session); err != nil {
		return nil, err
	}

	var details ai.SegmentDetails
	json.Unmarshal(session.Details, &details)
	var answers []ai.TestAnswer
	json.Unmarshal(session.Answers, &answers)

	report, err := s.AI.EvaluatePsychometricTest(ctx, string(session.Segment), details, answers, reflection)
	if err != nil {
		session.State = model.StateCollectingReflection
		if rbErr := s.PsychometricRepo.UpdateSession(session); rbErr != nil {
			logger.Log.Error("测评会话回退写入失败",
				zap.String("sessionID", session.ID), zap.Error(rbErr))
		}
		return nil, err
	}

	result := &model.PsychometricResult{
		UserID:         userID,
		SummaryReport:  report.SummaryReport,
		CareerAdvisory: report.CareerAdvisory,
		ExpertAdvice:   report.ExpertAdvice,
	}
	if err := s.PsychometricRepo.SaveResult(result); err != nil {
		session.State = model.StateCollectingReflection
		if rbErr := s.PsychometricRepo.UpdateSession(session); rbErr != nil {
			logger.Log.Error("测评会话回退写入失败",
				zap.String("sessionID", session.ID), zap.Error(rbErr))
		}
		return nil, err
	}

	session.State = model.StateDone
	if err := s.PsychometricRepo.UpdateSession(session); err != nil {
		return nil, err
	}

	logger.Log.Info("测评报告已生成", zap.String("sessionID", session.ID), zap.Uint("userID", userID))
	return session, nil
}

// GetResult 返回最近一次测评报告
func (s *AssessmentService) GetResult(userID uint) (*model.PsychometricResult, error) {
	return s.PsychometricRepo.FindResultByUserID(userID)
}
