package service

import (
	"fmt"
	"time"

	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
	"github.com/AtizaD/school-assessment-system-sub006/internal/repository"
	"github.com/AtizaD/school-assessment-system-sub006/internal/util"
	"github.com/AtizaD/school-assessment-system-sub006/pkg/logger"

	"go.uber.org/zap"
)

// AssessmentService covers the teacher-side surface: assessment and
// question bank authoring, per-student resets, and result listings.
type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	AttemptRepo    *repository.AttemptRepository
	ClassRepo      *repository.ClassRepository
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, attemptRepo *repository.AttemptRepository, classRepo *repository.ClassRepository) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		AttemptRepo:    attemptRepo,
		ClassRepo:      classRepo,
	}
}

type AssessmentInput struct {
	ClassID             uint   `json:"classId" binding:"required"`
	Title               string `json:"title" binding:"required"`
	Description         string `json:"description"`
	Subject             string `json:"subject"`
	Duration            *int   `json:"duration"`
	UsePooling          bool   `json:"usePooling"`
	QuestionsToAnswer   int    `json:"questionsToAnswer"`
	Date                string `json:"date" binding:"required"` // YYYY-MM-DD
	AllowLateSubmission bool   `json:"allowLateSubmission"`
	LateSubmissionDays  int    `json:"lateSubmissionDays"`
}

func (in AssessmentInput) validate() error {
	if in.Duration != nil && *in.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if in.UsePooling && in.QuestionsToAnswer <= 0 {
		return fmt.Errorf("questionsToAnswer must be positive when pooling is enabled")
	}
	if in.AllowLateSubmission && in.LateSubmissionDays <= 0 {
		return fmt.Errorf("lateSubmissionDays must be positive when late submission is allowed")
	}
	return nil
}

func (s *AssessmentService) Create(in AssessmentInput) (*model.Assessment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.ClassRepo.FindByID(in.ClassID); err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", in.Date)
	}

	a := &model.Assessment{
		ClassID:             in.ClassID,
		Title:               in.Title,
		Description:         in.Description,
		Subject:             in.Subject,
		Duration:            in.Duration,
		UsePooling:          in.UsePooling,
		QuestionsToAnswer:   in.QuestionsToAnswer,
		Date:                date,
		Status:              model.AssessmentDraft,
		AllowLateSubmission: in.AllowLateSubmission,
		LateSubmissionDays:  in.LateSubmissionDays,
	}
	if err := s.AssessmentRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) Get(id uint) (*model.Assessment, error) {
	a, err := s.AssessmentRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	return a, nil
}

func (s *AssessmentService) List(classID uint, page, limit int) ([]model.Assessment, int64, error) {
	return s.AssessmentRepo.List(classID, page, limit)
}

// ListForStudent returns non-draft assessments across the student's
// classes.
func (s *AssessmentService) ListForStudent(studentID uint) ([]model.Assessment, error) {
	classIDs, err := s.ClassRepo.ClassIDsForStudent(studentID)
	if err != nil {
		return nil, err
	}
	if len(classIDs) == 0 {
		return []model.Assessment{}, nil
	}
	return s.AssessmentRepo.ListForClasses(classIDs)
}

// Update rewrites the assessment configuration. Assessments are
// immutable once any attempt exists.
func (s *AssessmentService) Update(id uint, in AssessmentInput) (*model.Assessment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	a, err := s.AssessmentRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", in.Date)
	}

	attempts, err := s.AssessmentRepo.CountAttempts(id)
	if err != nil {
		return nil, err
	}
	if attempts > 0 {
		return nil, util.ErrAssessmentLocked
	}

	a.Title = in.Title
	a.Description = in.Description
	a.Subject = in.Subject
	a.Duration = in.Duration
	a.UsePooling = in.UsePooling
	a.QuestionsToAnswer = in.QuestionsToAnswer
	a.Date = date
	a.AllowLateSubmission = in.AllowLateSubmission
	a.LateSubmissionDays = in.LateSubmissionDays
	if err := s.AssessmentRepo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Publish moves a draft to pending, making it visible to students on
// its scheduled date.
func (s *AssessmentService) Publish(id uint) (*model.Assessment, error) {
	a, err := s.AssessmentRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	a.Status = model.AssessmentPending
	if err := s.AssessmentRepo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

type QuestionInput struct {
	Type          string   `json:"type" binding:"required,oneof=mcq short_answer"`
	Content       string   `json:"content" binding:"required"`
	MaxScore      float64  `json:"maxScore" binding:"required,gt=0"`
	AnswerMode    string   `json:"answerMode" binding:"omitempty,oneof=exact any_match"`
	CorrectAnswer string   `json:"correctAnswer"`
	Answers       []string `json:"answers"`     // any_match acceptable set
	AnswerCount   int      `json:"answerCount"` // any_match required matches
	Options       []struct {
		Text      string `json:"text" binding:"required"`
		IsCorrect bool   `json:"isCorrect"`
	} `json:"options"`
}

// applyQuestionInput validates the input and fills in the scoring
// fields for the question's type.
func applyQuestionInput(q *model.Question, in QuestionInput) error {
	q.Type = in.Type
	q.Content = in.Content
	q.MaxScore = in.MaxScore

	switch in.Type {
	case model.QuestionMCQ:
		if len(in.Options) < 2 {
			return fmt.Errorf("mcq question needs at least 2 options")
		}
		correct := 0
		for _, o := range in.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return fmt.Errorf("mcq question needs a correct option")
		}
	case model.QuestionShortAnswer:
		mode := in.AnswerMode
		if mode == "" {
			mode = model.AnswerModeExact
		}
		q.AnswerMode = mode
		switch mode {
		case model.AnswerModeExact:
			if in.CorrectAnswer == "" {
				return fmt.Errorf("exact short answer needs a correct answer")
			}
			q.CorrectAnswer = in.CorrectAnswer
		case model.AnswerModeAnyMatch:
			if len(in.Answers) == 0 {
				return fmt.Errorf("any_match short answer needs acceptable answers")
			}
			if in.AnswerCount > len(in.Answers) {
				return fmt.Errorf("answerCount %d exceeds acceptable answers %d", in.AnswerCount, len(in.Answers))
			}
			q.CorrectAnswer = model.AcceptableAnswers(in.Answers).Serialize()
			q.AnswerCount = in.AnswerCount
		}
	}
	return nil
}

// AddQuestion validates and stores a question with its options or
// acceptable answers.
func (s *AssessmentService) AddQuestion(assessmentID uint, in QuestionInput) (*model.Question, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}

	q := &model.Question{AssessmentID: a.ID}
	if err := applyQuestionInput(q, in); err != nil {
		return nil, err
	}

	if err := s.AssessmentRepo.CreateQuestion(q); err != nil {
		return nil, err
	}

	for _, o := range in.Options {
		opt := &model.QuestionOption{
			QuestionID: q.ID,
			Text:       o.Text,
			IsCorrect:  o.IsCorrect,
		}
		if err := s.AssessmentRepo.CreateOption(opt); err != nil {
			return nil, err
		}
		q.Options = append(q.Options, *opt)
	}
	return q, nil
}

func (s *AssessmentService) ListQuestions(assessmentID uint) ([]model.Question, error) {
	if _, err := s.AssessmentRepo.FindByID(assessmentID); err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	return s.AssessmentRepo.ListQuestions(assessmentID)
}

// UpdateQuestion rewrites a question in place, replacing its options or
// acceptable answers. Locked once attempts exist, same as deletion.
func (s *AssessmentService) UpdateQuestion(assessmentID, questionID uint, in QuestionInput) (*model.Question, error) {
	existing, err := s.AssessmentRepo.FindQuestionByID(questionID)
	if err != nil || existing.AssessmentID != assessmentID {
		return nil, util.ErrQuestionNotFound
	}
	attempts, err := s.AssessmentRepo.CountAttempts(assessmentID)
	if err != nil {
		return nil, err
	}
	if attempts > 0 {
		return nil, util.ErrAssessmentLocked
	}

	q := &model.Question{AssessmentID: assessmentID}
	q.ID = existing.ID
	if err := applyQuestionInput(q, in); err != nil {
		return nil, err
	}

	if err := s.AssessmentRepo.UpdateQuestion(q); err != nil {
		return nil, err
	}

	for _, old := range existing.Options {
		if err := s.AssessmentRepo.DeleteOption(old.ID); err != nil {
			return nil, err
		}
	}
	for _, o := range in.Options {
		opt := &model.QuestionOption{
			QuestionID: q.ID,
			Text:       o.Text,
			IsCorrect:  o.IsCorrect,
		}
		if err := s.AssessmentRepo.CreateOption(opt); err != nil {
			return nil, err
		}
		q.Options = append(q.Options, *opt)
	}
	return q, nil
}

func (s *AssessmentService) DeleteQuestion(assessmentID, questionID uint) error {
	q, err := s.AssessmentRepo.FindQuestionByID(questionID)
	if err != nil || q.AssessmentID != assessmentID {
		return util.ErrQuestionNotFound
	}
	attempts, err := s.AssessmentRepo.CountAttempts(assessmentID)
	if err != nil {
		return err
	}
	if attempts > 0 {
		return util.ErrAssessmentLocked
	}
	return s.AssessmentRepo.DeleteQuestion(questionID)
}

// ResetStudent records a partial reset for the student, granting the
// short override window on their next time check.
func (s *AssessmentService) ResetStudent(assessmentID, studentID, teacherID uint) (*model.AssessmentReset, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	enrolled, err := s.ClassRepo.IsEnrolled(a.ClassID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	reset := &model.AssessmentReset{
		AssessmentID: assessmentID,
		StudentID:    studentID,
		ResetType:    model.ResetTypePartial,
		ResetBy:      teacherID,
	}
	if err := s.AssessmentRepo.CreateReset(reset); err != nil {
		return nil, err
	}
	logger.Log.Info("partial reset granted",
		zap.Uint("assessmentID", assessmentID),
		zap.Uint("studentID", studentID),
		zap.Uint("resetBy", teacherID))
	return reset, nil
}

// StudentAnswers returns the student's answer ledger for review,
// including per-question scores once graded.
func (s *AssessmentService) StudentAnswers(assessmentID, studentID uint) ([]model.Answer, error) {
	if _, err := s.AssessmentRepo.FindByID(assessmentID); err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	return s.AttemptRepo.ListAnswers(assessmentID, studentID)
}

func (s *AssessmentService) ListResults(assessmentID uint, page, limit int) ([]model.Result, int64, error) {
	if _, err := s.AssessmentRepo.FindByID(assessmentID); err != nil {
		return nil, 0, util.ErrAssessmentNotFound
	}
	return s.AttemptRepo.ListResults(assessmentID, page, limit)
}
