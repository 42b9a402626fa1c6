package repository

import (
	"career_compass_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PsychometricRepository struct {
	DB *gorm.DB
}

func NewPsychometricRepository(db *gorm.DB) *PsychometricRepository {
	return &PsychometricRepository{DB: db}
}

// SaveResult 三段报告原子覆盖写入
func (r *PsychometricRepository) SaveResult(result *model.PsychometricResult) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"summary_report", "career_advisory", "expert_advice", "updated_at",
		}),
	}).Create(result).Error
}

func (r *PsychometricRepository) FindResultByUserID(userID uint) (*model.PsychometricResult, error) {
	var result model.PsychometricResult
	err := r.DB.Where("user_id = ?", userID).First(&result).Error
	return &result, err
}

func (r *PsychometricRepository) CreateSession(session *model.PsychometricSession) error {
	return r.DB.Create(session).Error
}

func (r *PsychometricRepository) FindSession(id string) (*model.PsychometricSession, error) {
	var session model.PsychometricSession
	err := r.DB.First(&session, "id = ?", id).Error
	return &session, err
}

// FindLatestSessionByUser 取用户最近一次向导会话，用于断点续答
func (r *PsychometricRepository) FindLatestSessionByUser(userID uint) (*model.PsychometricSession, error) {
	var session model.PsychometricSession
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&session).Error
	return &session, err
}

func (r *PsychometricRepository) UpdateSession(session *model.PsychometricSession) error {
	return r.DB.Save(session).Error
}
