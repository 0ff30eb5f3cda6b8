package model

const ResultCompleted = "completed"

// Answer is the durable record of student work, one row per
// (assessment, student, question), upserted on every autosave.
// swagger:model Answer
type Answer struct {
	BaseModel
	AssessmentID uint   `gorm:"index:idx_answer_key,unique;type:bigint unsigned" json:"assessmentId"`
	StudentID    uint   `gorm:"index:idx_answer_key,unique;type:bigint unsigned" json:"studentId"`
	QuestionID   uint   `gorm:"index:idx_answer_key,unique;type:bigint unsigned" json:"questionId"`
	AnswerText   string `gorm:"type:text" json:"answerText"`

	// Score stays nil until grading runs.
	Score *float64 `json:"score,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}

// Result is the single persisted score per (assessment, student),
// overwritten in place on re-grade.
// swagger:model Result
type Result struct {
	BaseModel
	AssessmentID uint    `gorm:"index:idx_result_pair,unique;type:bigint unsigned" json:"assessmentId"`
	StudentID    uint    `gorm:"index:idx_result_pair,unique;type:bigint unsigned" json:"studentId"`
	Score        float64 `gorm:"not null" json:"score"`
	Status       string  `gorm:"size:20;default:'completed'" json:"status"`
}

func (Result) TableName() string {
	return "results"
}
