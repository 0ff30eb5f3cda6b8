package model

const (
	QuestionMCQ         = "mcq"
	QuestionShortAnswer = "short_answer"
)

const (
	AnswerModeExact    = "exact"
	AnswerModeAnyMatch = "any_match"
)

// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID uint    `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	Type         string  `gorm:"size:20;not null" json:"type"`
	Content      string  `gorm:"type:text;not null" json:"content"`
	MaxScore     float64 `gorm:"default:0" json:"maxScore"`

	// Short-answer scoring. For exact mode CorrectAnswer is a plain string;
	// for any_match it is a serialized string list (see AcceptableAnswers)
	// and AnswerCount is the required number of distinct correct answers.
	AnswerMode    string `gorm:"size:20;default:'exact'" json:"answerMode"`
	CorrectAnswer string `gorm:"type:text" json:"-"`
	AnswerCount   int    `gorm:"default:0" json:"answerCount"`

	Options []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model QuestionOption
type QuestionOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
