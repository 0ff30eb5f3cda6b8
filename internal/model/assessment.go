package model

import "time"

const (
	AssessmentDraft     = "draft"
	AssessmentPending   = "pending"
	AssessmentCompleted = "completed"
)

// ResetTypePartial grants a short 5-minute window instead of the nominal
// duration; produced by the teacher reset workflow.
const ResetTypePartial = "partial"

// swagger:model Assessment
type Assessment struct {
	BaseModel
	ClassID     uint   `gorm:"index;type:bigint unsigned" json:"classId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Subject     string `gorm:"size:100" json:"subject"`

	// Duration is in minutes; nil or 0 means untimed.
	Duration *int `json:"duration,omitempty"`

	// When pooling is on, each attempt gets QuestionsToAnswer questions
	// drawn from the bank at attempt creation.
	UsePooling        bool `gorm:"default:false" json:"usePooling"`
	QuestionsToAnswer int  `gorm:"default:0" json:"questionsToAnswer"`

	Date                time.Time `json:"date"` // scheduled day
	Status              string    `gorm:"size:20;default:'draft'" json:"status"`
	AllowLateSubmission bool      `gorm:"default:false" json:"allowLateSubmission"`
	LateSubmissionDays  int       `gorm:"default:0" json:"lateSubmissionDays"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentReset marks a per-student time override. Only the latest row
// for an (assessment, student) pair is consulted.
type AssessmentReset struct {
	BaseModel
	AssessmentID uint   `gorm:"index:idx_reset_pair;type:bigint unsigned" json:"assessmentId"`
	StudentID    uint   `gorm:"index:idx_reset_pair;type:bigint unsigned" json:"studentId"`
	ResetType    string `gorm:"size:20;not null" json:"resetType"`
	ResetBy      uint   `gorm:"type:bigint unsigned" json:"resetBy"`
}

func (AssessmentReset) TableName() string {
	return "assessment_resets"
}
