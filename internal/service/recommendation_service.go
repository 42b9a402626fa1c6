package service

import (
	"career_compass_backend/internal/ai"
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/util"
	"career_compass_backend/pkg/logger"
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecommendationService 职业推荐编排：画像 → AI三件套 → 原子落库
type RecommendationService struct {
	AI                 *ai.Client
	RecommendationRepo *repository.RecommendationRepository
	AssessmentRepo     *repository.AssessmentRepository
}

func NewRecommendationService(aiClient *ai.Client, recRepo *repository.RecommendationRepository, assessmentRepo *repository.AssessmentRepository) *RecommendationService {
	return &RecommendationService{
		AI:                 aiClient,
		RecommendationRepo: recRepo,
		AssessmentRepo:     assessmentRepo,
	}
}

// Generate 基于当前画像生成职业路径/技能差距/学习路线图，整体覆盖旧结果
func (s *RecommendationService) Generate(ctx context.Context, userID uint) (*model.Recommendation, error) {
	assessment, err := s.AssessmentRepo.FindByUserID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrNoRecommendation
		}
		return nil, err
	}
	if strings.TrimSpace(assessment.ResumeText) == "" &&
		strings.TrimSpace(assessment.Skills) == "" &&
		strings.TrimSpace(assessment.Interests) == "" {
		return nil, util.ErrNoRecommendation
	}

	out, err := s.AI.GenerateCareerPaths(ctx, ai.CareerPathsInput{
		ResumeText: assessment.ResumeText,
		Skills:     assessment.Skills,
		Interests:  assessment.Interests,
	})
	if err != nil {
		return nil, err
	}

	paths, _ := json.Marshal(out.CareerPaths)
	gaps, _ := json.Marshal(out.SkillGaps)
	rec := &model.Recommendation{
		UserID:          userID,
		CareerPaths:     paths,
		SkillGaps:       gaps,
		LearningRoadmap: out.LearningRoadmap,
	}
	if err := s.RecommendationRepo.Upsert(rec); err != nil {
		return nil, err
	}

	logger.Log.Info("职业推荐已生成",
		zap.Uint("userID", userID),
		zap.Int("careerPaths", len(out.CareerPaths)),
	)
	return rec, nil
}

func (s *RecommendationService) Get(userID uint) (*model.Recommendation, error) {
	rec, err := s.RecommendationRepo.FindByUserID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrNoRecommendation
	}
	return rec, err
}

// RegenerateRoadmap 生成备选路线图并替换已保存的路线图，其余字段不动
func (s *RecommendationService) RegenerateRoadmap(ctx context.Context, userID uint, careerPath, skillGaps string) (*model.Recommendation, error) {
	rec, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if careerPath == "" {
		if paths := rec.CareerPathList(); len(paths) > 0 {
			careerPath = paths[0]
		}
	}
	if skillGaps == "" {
		skillGaps = strings.Join(rec.SkillGapList(), ", ")
	}

	summaries := s.profileSummaries(userID)
	out, err := s.AI.GenerateRoadmap(ctx, ai.RoadmapInput{
		CareerPath:        careerPath,
		SkillGaps:         skillGaps,
		ResumeSummary:     summaries.Resume,
		AssessmentSummary: summaries.Assessment,
	})
	if err != nil {
		return nil, err
	}

	rec.LearningRoadmap = out.Roadmap
	if err := s.RecommendationRepo.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Flowchart 把当前路线图渲染为Mermaid文本，不落库
func (s *RecommendationService) Flowchart(ctx context.Context, userID uint) (string, error) {
	rec, err := s.Get(userID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(rec.LearningRoadmap) == "" {
		return "", util.ErrNoRecommendation
	}

	out, err := s.AI.GenerateFlowchart(ctx, rec.LearningRoadmap)
	if err != nil {
		return "", err
	}
	return out.Flowchart, nil
}

// FindJobs 按职业路径生成虚构岗位列表；路径为空时取推荐首条
func (s *RecommendationService) FindJobs(ctx context.Context, userID uint, careerPath string) ([]ai.JobListing, error) {
	if careerPath == "" {
		rec, err := s.Get(userID)
		if err != nil {
			return nil, err
		}
		paths := rec.CareerPathList()
		if len(paths) == 0 {
			return nil, util.ErrNoRecommendation
		}
		careerPath = paths[0]
	}

	out, err := s.AI.FindRelevantJobs(ctx, careerPath)
	if err != nil {
		return nil, err
	}
	return out.JobListings, nil
}

// ProfileSummaries 注入助手提示词的画像摘要
type ProfileSummaries struct {
	Resume     string
	Assessment string
}

// profileSummaries 摘要截断到提示词友好的长度
func (s *RecommendationService) profileSummaries(userID uint) ProfileSummaries {
	var out ProfileSummaries
	assessment, err := s.AssessmentRepo.FindByUserID(userID)
	if err != nil {
		return out
	}
	out.Resume = truncate(assessment.ResumeText, 2000)
	if assessment.Skills != "" || assessment.Interests != "" {
		out.Assessment = "Skills: " + assessment.Skills + "; Interests: " + assessment.Interests
	}
	return out
}

// truncate 按字节上限截断，回退到rune边界避免截出半个字符
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
