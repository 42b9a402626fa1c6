package service

import (
	"career_compass_backend/internal/catalog"
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/util"
	"context"
	"encoding/json"
	"errors"
	"math"

	"gorm.io/gorm"
)

// MilestoneStatus 单条里程碑及其完成状态
type MilestoneStatus struct {
	Task           string        `json:"task"`
	Badge          catalog.Badge `json:"badge"`
	ProgressWeight int           `json:"progressWeight"`
	Completed      bool          `json:"completed"`
}

// RoleProgress 某岗位的进度视图
type RoleProgress struct {
	Role       string            `json:"role"`
	Percent    int               `json:"percent"`
	Milestones []MilestoneStatus `json:"milestones"`
	Badges     []catalog.Badge   `json:"badges"`
}

// ProgressStore 进度双层存储能力：MySQL已保存文档 + 勾选工作副本
type ProgressStore interface {
	FindByUserID(userID uint) (*model.UserProgress, error)
	Upsert(progress *model.UserProgress) error
	MirrorWorkingSet(ctx context.Context, userID uint, tasks []string) error
	ToggleWorkingTask(ctx context.Context, userID uint, task string) (bool, error)
	WorkingTasks(ctx context.Context, userID uint) ([]string, error)
}

// ProgressService 里程碑进度：Redis工作副本承接勾选，显式保存才写MySQL
type ProgressService struct {
	Catalog      catalog.Catalog
	ProgressRepo ProgressStore
}

func NewProgressService(cat catalog.Catalog, progressRepo ProgressStore) *ProgressService {
	return &ProgressService{
		Catalog:      cat,
		ProgressRepo: progressRepo,
	}
}

// workingSet 读取工作副本；副本为空且存在已保存文档时用文档重建
func (s *ProgressService) workingSet(ctx context.Context, userID uint) (map[string]bool, error) {
	tasks, err := s.ProgressRepo.WorkingTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		saved, err := s.ProgressRepo.FindByUserID(userID)
		if err == nil {
			tasks = saved.MilestoneList()
			if len(tasks) > 0 {
				if err := s.ProgressRepo.MirrorWorkingSet(ctx, userID, tasks); err != nil {
					return nil, err
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	set := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		set[t] = true
	}
	return set, nil
}

// ComputePercent 完成权重占比；总权重为0时按100计算分母
func ComputePercent(milestones []catalog.Milestone, completed map[string]bool) int {
	total := 0
	done := 0
	for _, m := range milestones {
		total += m.ProgressWeight
		if completed[m.Task] {
			done += m.ProgressWeight
		}
	}
	if total == 0 {
		total = 100
	}
	percent := int(math.Round(100 * float64(done) / float64(total)))
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent
}

// earnedBadges 已完成里程碑的徽章，按名称去重
func earnedBadges(milestones []catalog.Milestone, completed map[string]bool) []catalog.Badge {
	seen := make(map[string]bool)
	badges := make([]catalog.Badge, 0)
	for _, m := range milestones {
		if !completed[m.Task] || seen[m.Badge.Name] {
			continue
		}
		seen[m.Badge.Name] = true
		badges = append(badges, m.Badge)
	}
	return badges
}

// Groups 职业目录分组
func (s *ProgressService) Groups() []string {
	return s.Catalog.Groups()
}

// Roles 分组下的岗位
func (s *ProgressService) Roles(group string) []string {
	return s.Catalog.Roles(group)
}

// RoleProgress 指定岗位的进度视图
func (s *ProgressService) RoleProgress(ctx context.Context, userID uint, role string) (*RoleProgress, error) {
	jr, ok := s.Catalog.FindRole(role)
	if !ok {
		return nil, util.ErrRoleNotFound
	}

	completed, err := s.workingSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]MilestoneStatus, 0, len(jr.Milestones))
	for _, m := range jr.Milestones {
		statuses = append(statuses, MilestoneStatus{
			Task:           m.Task,
			Badge:          m.Badge,
			ProgressWeight: m.ProgressWeight,
			Completed:      completed[m.Task],
		})
	}

	return &RoleProgress{
		Role:       role,
		Percent:    ComputePercent(jr.Milestones, completed),
		Milestones: statuses,
		Badges:     earnedBadges(jr.Milestones, completed),
	}, nil
}

// Toggle 勾选/取消一条里程碑，返回该岗位的最新视图
func (s *ProgressService) Toggle(ctx context.Context, userID uint, role, task string) (*RoleProgress, error) {
	jr, ok := s.Catalog.FindRole(role)
	if !ok {
		return nil, util.ErrRoleNotFound
	}
	found := false
	for _, m := range jr.Milestones {
		if m.Task == task {
			found = true
			break
		}
	}
	if !found {
		return nil, util.ErrRoleNotFound
	}

	// 确保工作副本已从保存的文档初始化，再应用勾选
	if _, err := s.workingSet(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.ProgressRepo.ToggleWorkingTask(ctx, userID, task); err != nil {
		return nil, err
	}
	return s.RoleProgress(ctx, userID, role)
}

// Save 显式保存：工作副本整体覆盖远端文档
func (s *ProgressService) Save(ctx context.Context, userID uint) (*model.UserProgress, error) {
	tasks, err := s.ProgressRepo.WorkingTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []string{}
	}

	raw, _ := json.Marshal(tasks)
	progress := &model.UserProgress{
		UserID:              userID,
		CompletedMilestones: raw,
	}
	if err := s.ProgressRepo.Upsert(progress); err != nil {
		return nil, err
	}
	// 保存后重建工作副本，保证两层一致
	if err := s.ProgressRepo.MirrorWorkingSet(ctx, userID, tasks); err != nil {
		return nil, err
	}
	return progress, nil
}
