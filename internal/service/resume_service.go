package service

import (
	"bytes"
	"career_compass_backend/internal/ai"
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/util"
	"career_compass_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// classifierThreshold 结构化特征命中数达到该值才认定为简历
const classifierThreshold = 3

var (
	pdfMagic   = []byte("%PDF")
	emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneRegex = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	// 简历常见段落标题与身份线索，不区分大小写逐词计数
	resumeKeywords = []string{
		"education", "experience", "work experience", "skills", "projects",
		"certifications", "summary", "objective", "contact",
		"linkedin", "github", "university", "college",
	}
)

// AssessmentStore 画像文档的读写能力
type AssessmentStore interface {
	FindByUserID(userID uint) (*model.Assessment, error)
	Upsert(assessment *model.Assessment) error
	Update(assessment *model.Assessment) error
}

// ResumeService 简历接收管道：类型校验 → 文本抽取 → 启发式分类 → 生成推荐 → 存档入库
type ResumeService struct {
	AssessmentRepo     AssessmentStore
	RecommendationRepo *repository.RecommendationRepository
	AI                 *ai.Client
	Storage            *StorageService
}

func NewResumeService(assessmentRepo AssessmentStore, recRepo *repository.RecommendationRepository, aiClient *ai.Client, storage *StorageService) *ResumeService {
	return &ResumeService{
		AssessmentRepo:     assessmentRepo,
		RecommendationRepo: recRepo,
		AI:                 aiClient,
		Storage:            storage,
	}
}

// ProcessUpload 完整管道；任何一环失败都不落库
func (s *ResumeService) ProcessUpload(ctx context.Context, userID uint, filename string, data []byte) (*model.Assessment, *model.Recommendation, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, nil, util.ErrInvalidFileType
	}

	text, err := ExtractPDFText(data)
	if err != nil || strings.TrimSpace(text) == "" {
		logger.Log.Warn("简历文本抽取失败", zap.Uint("userID", userID), zap.Error(err))
		return nil, nil, util.ErrEmptyExtraction
	}

	if score := ClassifyResume(text); score < classifierThreshold {
		logger.Log.Info("上传文件未通过简历分类",
			zap.Uint("userID", userID),
			zap.Int("score", score),
		)
		return nil, nil, util.ErrNotAResume
	}

	stored := fmt.Sprintf("resumes/%d/%d_%s", userID, time.Now().UnixNano(), filename)
	fileURL, err := s.Storage.Provider.Upload(ctx, stored, bytes.NewReader(data), int64(len(data)), "application/pdf")
	if err != nil {
		return nil, nil, fmt.Errorf("store resume file: %w", err)
	}

	// 上传即触发首轮推荐，技能/兴趣留给后续表单补充
	out, err := s.AI.GenerateCareerPaths(ctx, ai.CareerPathsInput{ResumeText: text})
	if err != nil {
		return nil, nil, err
	}

	// 重新上传覆盖简历字段，保留表单填写的技能/兴趣；
	// 只有确认无记录才新建，读失败直接报错以免覆盖已有画像
	assessment, err := s.AssessmentRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		assessment = &model.Assessment{UserID: userID}
	} else if err != nil {
		return nil, nil, err
	}
	assessment.ResumeText = text
	assessment.ResumeFile = fileURL
	if err := s.AssessmentRepo.Upsert(assessment); err != nil {
		return nil, nil, err
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
		return nil, nil, err
	}
	return assessment, rec, nil
}

// ExtractPDFText 逐页抽取纯文本
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ClassifyResume 启发式打分：关键词各计1分，命中邮箱/电话格式各计1分
func ClassifyResume(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range resumeKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	if emailRegex.MatchString(text) {
		score++
	}
	if phoneRegex.MatchString(text) {
		score++
	}
	return score
}

// SaveProfile 技能/兴趣表单入口，与简历共用一份画像
func (s *ResumeService) SaveProfile(userID uint, skills, interests string) (*model.Assessment, error) {
	assessment, err := s.AssessmentRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		assessment = &model.Assessment{UserID: userID, Skills: skills, Interests: interests}
		if err := s.AssessmentRepo.Upsert(assessment); err != nil {
			return nil, err
		}
		return assessment, nil
	}
	if err != nil {
		return nil, err
	}
	assessment.Skills = skills
	assessment.Interests = interests
	if err := s.AssessmentRepo.Update(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// GetAssessment 返回用户画像
func (s *ResumeService) GetAssessment(userID uint) (*model.Assessment, error) {
	return s.AssessmentRepo.FindByUserID(userID)
}
