package repository

import (
	"career_compass_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

// Upsert 推荐结果整体覆盖，三个字段要么全部更新要么都不更新
func (r *RecommendationRepository) Upsert(rec *model.Recommendation) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"career_paths", "skill_gaps", "learning_roadmap", "updated_at",
		}),
	}).Create(rec).Error
}

func (r *RecommendationRepository) FindByUserID(userID uint) (*model.Recommendation, error) {
	var rec model.Recommendation
	err := r.DB.Where("user_id = ?", userID).First(&rec).Error
	return &rec, err
}
