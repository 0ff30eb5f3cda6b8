package model

import "time"

const (
	AttemptInProgress = "in_progress"
	AttemptCompleted  = "completed"
	AttemptExpired    = "expired"
)

// swagger:model Attempt
type Attempt struct {
	BaseModel
	AssessmentID uint       `gorm:"index:idx_attempt_pair,unique;type:bigint unsigned" json:"assessmentId"`
	StudentID    uint       `gorm:"index:idx_attempt_pair,unique;type:bigint unsigned" json:"studentId"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Status       string     `gorm:"size:20;default:'in_progress'" json:"status"`

	// QuestionOrder is the serialized question ID list fixed at creation
	// when pooling is active; empty otherwise. Parsed only by the selector.
	QuestionOrder string `gorm:"type:json" json:"-"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// IsTerminal reports whether the attempt has reached a final state.
func (a *Attempt) IsTerminal() bool {
	return a.Status == AttemptCompleted || a.Status == AttemptExpired
}
