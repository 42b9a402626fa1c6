package model

import "encoding/json"

// Recommendation AI生成的职业推荐，整体原子写入，重新生成前不可变
// swagger:model Recommendation
type Recommendation struct {
	BaseModel
	UserID          uint            `gorm:"uniqueIndex;not null" json:"userId"`
	CareerPaths     json.RawMessage `gorm:"type:json" json:"careerPaths"` // list<string>
	SkillGaps       json.RawMessage `gorm:"type:json" json:"skillGaps"`   // list<string>
	LearningRoadmap string          `gorm:"type:longtext" json:"learningRoadmap"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

func (r *Recommendation) CareerPathList() []string {
	return decodeStringList(r.CareerPaths)
}

func (r *Recommendation) SkillGapList() []string {
	return decodeStringList(r.SkillGaps)
}

func decodeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
