package model

import "encoding/json"

// UserProgress 已完成里程碑集合（远端副本）；保存时整体覆盖，last-write-wins
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID              uint            `gorm:"uniqueIndex;not null" json:"userId"`
	CompletedMilestones json.RawMessage `gorm:"type:json" json:"completedMilestones"` // list<string>，元素为里程碑task文本
}

func (UserProgress) TableName() string {
	return "user_progress"
}

func (p *UserProgress) MilestoneList() []string {
	return decodeStringList(p.CompletedMilestones)
}
