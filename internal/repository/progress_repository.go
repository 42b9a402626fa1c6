package repository

import (
	"career_compass_backend/internal/model"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// workingSetTTL 工作副本保活时长，每次读写续期
const workingSetTTL = 7 * 24 * time.Hour

// ProgressRepository 里程碑进度双层存储：
// MySQL持久化已保存文档，Redis集合承接保存前的勾选工作副本
type ProgressRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewProgressRepository(db *gorm.DB, rdb *redis.Client) *ProgressRepository {
	return &ProgressRepository{DB: db, Redis: rdb}
}

func (r *ProgressRepository) FindByUserID(userID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ?", userID).First(&progress).Error
	return &progress, err
}

// Upsert 显式保存：整个文档最后写入者胜出
func (r *ProgressRepository) Upsert(progress *model.UserProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed_milestones", "updated_at",
		}),
	}).Create(progress).Error
}

func workingSetKey(userID uint) string {
	return fmt.Sprintf("progress:working:%d", userID)
}

// MirrorWorkingSet 用已保存文档重建工作副本
func (r *ProgressRepository) MirrorWorkingSet(ctx context.Context, userID uint, tasks []string) error {
	key := workingSetKey(userID)
	pipe := r.Redis.TxPipeline()
	pipe.Del(ctx, key)
	if len(tasks) > 0 {
		members := make([]interface{}, len(tasks))
		for i, t := range tasks {
			members[i] = t
		}
		pipe.SAdd(ctx, key, members...)
	}
	pipe.Expire(ctx, key, workingSetTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// ToggleWorkingTask 勾选/取消一个里程碑，返回操作后是否已完成
func (r *ProgressRepository) ToggleWorkingTask(ctx context.Context, userID uint, task string) (bool, error) {
	key := workingSetKey(userID)
	member, err := r.Redis.SIsMember(ctx, key, task).Result()
	if err != nil {
		return false, err
	}
	if member {
		err = r.Redis.SRem(ctx, key, task).Err()
	} else {
		err = r.Redis.SAdd(ctx, key, task).Err()
	}
	if err != nil {
		return false, err
	}
	r.Redis.Expire(ctx, key, workingSetTTL)
	return !member, nil
}

func (r *ProgressRepository) WorkingTasks(ctx context.Context, userID uint) ([]string, error) {
	tasks, err := r.Redis.SMembers(ctx, workingSetKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return tasks, err
}
