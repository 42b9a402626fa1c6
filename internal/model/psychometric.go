package model

import "encoding/json"

// PsychometricResult 测评报告，三段独立的Markdown文本，整体原子写入
// swagger:model PsychometricResult
type PsychometricResult struct {
	BaseModel
	UserID         uint   `gorm:"uniqueIndex;not null" json:"userId"`
	SummaryReport  string `gorm:"type:longtext" json:"psychometricSummaryReport"`
	CareerAdvisory string `gorm:"type:longtext" json:"careerAdvisory"`
	ExpertAdvice   string `gorm:"type:longtext" json:"expertAdvice"`
}

func (PsychometricResult) TableName() string {
	return "psychometric_results"
}

// SessionState 测评向导状态机状态
type SessionState string

const (
	StateSelectingSegment     SessionState = "selecting-segment"
	StateCollectingDetails    SessionState = "collecting-details"
	StateGeneratingTest       SessionState = "generating-test"
	StateAnsweringTest        SessionState = "answering-test"
	StateCollectingReflection SessionState = "collecting-reflection"
	StateEvaluating           SessionState = "evaluating"
	StateDone                 SessionState = "done"
)

// PsychometricSession 测评向导会话；状态与已填内容全部落库，
// 失败重试时不丢失已作答数据
type PsychometricSession struct {
	UUIDBase
	UserID     uint            `gorm:"index;not null" json:"userId"`
	State      SessionState    `gorm:"size:30;not null" json:"state"`
	Segment    UserSegment     `gorm:"size:30" json:"segment,omitempty"`
	Details    json.RawMessage `gorm:"type:json" json:"details,omitempty"`
	Questions  json.RawMessage `gorm:"type:json" json:"questions,omitempty"`
	Answers    json.RawMessage `gorm:"type:json" json:"answers,omitempty"`
	Reflection string          `gorm:"type:text" json:"reflection,omitempty"`
}

func (PsychometricSession) TableName() string {
	return "psychometric_sessions"
}
