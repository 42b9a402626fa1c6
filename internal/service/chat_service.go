package service

import (
	"career_compass_backend/internal/ai"
	"career_compass_backend/internal/repository"
	"context"
	"strings"
)

// 助手标识，同时作为Redis会话记录的键名片段
const (
	AssistantNavigator = "navigator"
	AssistantTechMitra = "tech-mitra"
	AssistantAbroad    = "abroad"
)

// ChatService 三个会话助手的编排：拼装用户画像上下文、调用网关、维护会话记录
type ChatService struct {
	AI                 *ai.Client
	ChatRepo           *repository.ChatRepository
	RecommendationRepo *repository.RecommendationRepository
	AssessmentRepo     *repository.AssessmentRepository
	PsychometricRepo   *repository.PsychometricRepository
}

func NewChatService(
	aiClient *ai.Client,
	chatRepo *repository.ChatRepository,
	recRepo *repository.RecommendationRepository,
	assessmentRepo *repository.AssessmentRepository,
	psychometricRepo *repository.PsychometricRepository,
) *ChatService {
	return &ChatService{
		AI:                 aiClient,
		ChatRepo:           chatRepo,
		RecommendationRepo: recRepo,
		AssessmentRepo:     assessmentRepo,
		PsychometricRepo:   psychometricRepo,
	}
}

// chatContext 汇总画像快照；缺失的部分以空串注入，提示词里自行降级
func (s *ChatService) chatContext(userID uint) ai.ChatContext {
	var cc ai.ChatContext

	if rec, err := s.RecommendationRepo.FindByUserID(userID); err == nil {
		cc.CareerPaths = strings.Join(rec.CareerPathList(), ", ")
		cc.SkillGaps = strings.Join(rec.SkillGapList(), ", ")
		cc.LearningRoadmap = truncate(rec.LearningRoadmap, 4000)
	}
	if assessment, err := s.AssessmentRepo.FindByUserID(userID); err == nil {
		cc.ResumeSummary = truncate(assessment.ResumeText, 2000)
	}
	if result, err := s.PsychometricRepo.FindResultByUserID(userID); err == nil {
		cc.AssessmentSummary = truncate(result.SummaryReport, 2000)
	}
	return cc
}

// Chat 导航/TechMitra双人格入口
func (s *ChatService) Chat(ctx context.Context, userID uint, persona, message string) (string, error) {
	cc := s.chatContext(userID)

	var out *ai.ChatOutput
	var err error
	switch persona {
	case AssistantTechMitra:
		out, err = s.AI.TechMitraChat(ctx, cc, message)
	default:
		persona = AssistantNavigator
		out, err = s.AI.NavigatorChat(ctx, cc, message)
	}
	if err != nil {
		return "", err
	}

	if err := s.ChatRepo.AppendExchange(ctx, persona, userID, message, out.Response); err != nil {
		return "", err
	}
	return out.Response, nil
}

// AbroadChat 出国咨询：多轮对话，历史从Redis读出传给模型
func (s *ChatService) AbroadChat(ctx context.Context, userID uint, message string) (string, error) {
	cc := s.chatContext(userID)

	history, err := s.ChatRepo.Transcript(ctx, AssistantAbroad, userID)
	if err != nil {
		return "", err
	}

	out, err := s.AI.AbroadChat(ctx, cc.ResumeSummary, cc.AssessmentSummary, history, message)
	if err != nil {
		return "", err
	}

	if err := s.ChatRepo.AppendExchange(ctx, AssistantAbroad, userID, message, out.Response); err != nil {
		return "", err
	}
	return out.Response, nil
}

// Transcript 返回某助手的会话记录文本
func (s *ChatService) Transcript(ctx context.Context, userID uint, assistant string) (string, error) {
	return s.ChatRepo.Transcript(ctx, assistant, userID)
}

// Reset 清空某助手的会话记录
func (s *ChatService) Reset(ctx context.Context, userID uint, assistant string) error {
	return s.ChatRepo.ClearTranscript(ctx, assistant, userID)
}
