package model

// UserSegment 用户画像分类，决定测试题目与提示词变体
type UserSegment string

const (
	SegmentKid           UserSegment = "kid"
	SegmentSchoolStudent UserSegment = "school-student"
	SegmentCollege       UserSegment = "college-student"
	SegmentProfessional  UserSegment = "professional"
)

func (s UserSegment) Valid() bool {
	switch s {
	case SegmentKid, SegmentSchoolStudent, SegmentCollege, SegmentProfessional:
		return true
	}
	return false
}

// Assessment 每个用户一份；重新上传简历或重新测评时整体覆盖
// swagger:model Assessment
type Assessment struct {
	BaseModel
	UserID      uint        `gorm:"uniqueIndex;not null" json:"userId"`
	ResumeText  string      `gorm:"type:longtext" json:"resumeText"`
	Skills      string      `gorm:"type:text" json:"skills"`    // 逗号分隔
	Interests   string      `gorm:"type:text" json:"interests"` // 逗号分隔
	UserSegment UserSegment `gorm:"size:30" json:"userSegment,omitempty"`
	ResumeFile  string      `gorm:"size:255" json:"resumeFile,omitempty"` // 原始PDF存储路径
}

func (Assessment) TableName() string {
	return "assessments"
}
