package repository

import (
	"career_compass_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// Upsert 每个用户只保留一份画像，重复提交整体覆盖
func (r *AssessmentRepository) Upsert(assessment *model.Assessment) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"resume_text", "skills", "interests", "user_segment", "resume_file", "updated_at",
		}),
	}).Create(assessment).Error
}

func (r *AssessmentRepository) Update(assessment *model.Assessment) error {
	return r.DB.Save(assessment).Error
}

func (r *AssessmentRepository) FindByUserID(userID uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.DB.Where("user_id = ?", userID).First(&assessment).Error
	return &assessment, err
}
