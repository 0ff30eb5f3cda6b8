package service

import (
	"math/rand"
	"time"

	"github.com/AtizaD/school-assessment-system-sub006/internal/grading"
	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
	"github.com/AtizaD/school-assessment-system-sub006/internal/repository"
	"github.com/AtizaD/school-assessment-system-sub006/internal/util"
	"github.com/AtizaD/school-assessment-system-sub006/pkg/logger"
	"github.com/AtizaD/school-assessment-system-sub006/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttemptService owns the attempt lifecycle. It is the only component
// allowed to move an attempt to a terminal state and commit grading.
type AttemptService struct {
	AttemptRepo    *repository.AttemptRepository
	AssessmentRepo *repository.AssessmentRepository
	ClassRepo      *repository.ClassRepository
	DB             *gorm.DB
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, assessmentRepo *repository.AssessmentRepository, classRepo *repository.ClassRepository, db *gorm.DB) *AttemptService {
	return &AttemptService{
		AttemptRepo:    attemptRepo,
		AssessmentRepo: assessmentRepo,
		ClassRepo:      classRepo,
		DB:             db,
	}
}

type QuestionAnswer struct {
	QuestionID uint   `json:"questionId"`
	AnswerText string `json:"answerText"`
}

// StudentOption is an MCQ option with the correctness flag stripped.
type StudentOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// StudentQuestion is a question as shown to the student: no correct
// answers, no scoring rules beyond what the UI needs.
type StudentQuestion struct {
	ID          uint            `json:"id"`
	Type        string          `json:"type"`
	Content     string          `json:"content"`
	MaxScore    float64         `json:"maxScore"`
	AnswerCount int             `json:"answerCount,omitempty"`
	Options     []StudentOption `json:"options,omitempty"`
}

type AttemptView struct {
	AttemptID        uint              `json:"attemptId"`
	Status           string            `json:"status"`
	StartTime        time.Time         `json:"startTime"`
	RemainingSeconds int64             `json:"remainingSeconds"` // -1 when untimed
	Questions        []StudentQuestion `json:"questions"`
}

type TimeStatus struct {
	RemainingSeconds int64    `json:"remainingSeconds"` // -1 when untimed
	Status           string   `json:"status"`
	AutoSubmitted    bool     `json:"autoSubmitted,omitempty"`
	Score            *float64 `json:"score,omitempty"`
	Redirect         string   `json:"redirect,omitempty"`
}

// checkAccess is the gate in front of every ledger write and attempt
// transition. Any violation fails the whole operation before a write.
func (s *AttemptService) checkAccess(studentID uint, a *model.Assessment, now time.Time) error {
	enrolled, err := s.ClassRepo.IsEnrolled(a.ClassID, studentID)
	if err != nil {
		return err
	}
	if !enrolled {
		return util.ErrNotEnrolled
	}

	if a.Status != model.AssessmentPending && a.Status != model.AssessmentCompleted {
		return util.ErrAssessmentNotAccessible
	}

	if !assessmentOpenOn(a, now) {
		return util.ErrAssessmentNotToday
	}

	result, err := s.AttemptRepo.FindResult(a.ID, studentID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if result != nil && result.Status == model.ResultCompleted {
		return util.ErrAlreadyGraded
	}
	return nil
}

// assessmentOpenOn reports whether the assessment accepts work on the
// given day: the scheduled date itself, or within the late-submission
// window when that is allowed.
func assessmentOpenOn(a *model.Assessment, now time.Time) bool {
	y1, m1, d1 := a.Date.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return true
	}
	if !a.AllowLateSubmission || now.Before(a.Date) {
		return false
	}
	deadline := a.Date.AddDate(0, 0, a.LateSubmissionDays+1)
	return now.Before(deadline)
}

// StartAttempt returns the student's attempt for the assessment,
// creating it on first call. When pooling is active the question subset
// is drawn once here and fixed for the attempt's lifetime.
func (s *AttemptService) StartAttempt(studentID, assessmentID uint) (*AttemptView, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	now := time.Now()
	if err := s.checkAccess(studentID, a, now); err != nil {
		return nil, err
	}

	attempt, err := s.AttemptRepo.Find(assessmentID, studentID)
	if err == gorm.ErrRecordNotFound {
		attempt = &model.Attempt{
			AssessmentID: assessmentID,
			StudentID:    studentID,
			StartTime:    now,
			Status:       model.AttemptInProgress,
		}
		if a.UsePooling {
			order, err := s.drawQuestionOrder(a)
			if err != nil {
				return nil, err
			}
			attempt.QuestionOrder = order.Serialize()
		}
		if err := s.AttemptRepo.Create(attempt); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return s.buildView(a, attempt, now)
}

// drawQuestionOrder picks questions_to_answer ids uniformly without
// replacement from the bank.
func (s *AttemptService) drawQuestionOrder(a *model.Assessment) (model.QuestionIDList, error) {
	bank, err := s.AssessmentRepo.ListQuestions(a.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(bank))
	for i, q := range bank {
		ids[i] = q.ID
	}
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	n := a.QuestionsToAnswer
	if n <= 0 || n > len(ids) {
		n = len(ids)
	}
	return model.QuestionIDList(ids[:n]), nil
}

// GetAttempt returns the current view of an existing attempt.
func (s *AttemptService) GetAttempt(studentID, assessmentID uint) (*AttemptView, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	attempt, err := s.AttemptRepo.Find(assessmentID, studentID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	return s.buildView(a, attempt, time.Now())
}

func (s *AttemptService) buildView(a *model.Assessment, attempt *model.Attempt, now time.Time) (*AttemptView, error) {
	bank, err := s.AssessmentRepo.ListQuestions(a.ID)
	if err != nil {
		return nil, err
	}
	selected := grading.SelectQuestions(a, attempt, bank)
	if a.UsePooling && len(selected) == 0 {
		logger.Log.Error("pooled attempt has no stored question order",
			zap.Uint("assessmentID", a.ID),
			zap.Uint("attemptID", attempt.ID),
			zap.Uint("studentID", attempt.StudentID))
	}

	byID := make(map[uint]model.Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}

	questions := make([]StudentQuestion, 0, len(selected))
	for _, id := range selected {
		q, ok := byID[id]
		if !ok {
			continue
		}
		sq := StudentQuestion{
			ID:       q.ID,
			Type:     q.Type,
			Content:  q.Content,
			MaxScore: q.MaxScore,
		}
		if q.Type == model.QuestionShortAnswer && q.AnswerMode == model.AnswerModeAnyMatch {
			sq.AnswerCount = q.AnswerCount
		}
		for _, opt := range q.Options {
			sq.Options = append(sq.Options, StudentOption{ID: opt.ID, Text: opt.Text})
		}
		questions = append(questions, sq)
	}

	reset, err := s.AssessmentRepo.LatestReset(a.ID, attempt.StudentID)
	if err != nil {
		return nil, err
	}
	secs, limited := Remaining(attempt, a, reset, now)
	if !limited {
		secs = -1
	}

	return &AttemptView{
		AttemptID:        attempt.ID,
		Status:           attempt.Status,
		StartTime:        attempt.StartTime,
		RemainingSeconds: secs,
		Questions:        questions,
	}, nil
}

// CheckTime is the polling endpoint's core: report remaining time, and
// when it has run out on an in-progress timed attempt, force the expiry
// transition exactly once.
func (s *AttemptService) CheckTime(studentID, assessmentID uint) (*TimeStatus, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	attempt, err := s.AttemptRepo.Find(assessmentID, studentID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}

	if attempt.IsTerminal() {
		st := &TimeStatus{Status: attempt.Status, Redirect: "results"}
		if res, err := s.AttemptRepo.FindResult(assessmentID, studentID); err == nil {
			st.Score = &res.Score
		}
		return st, nil
	}

	reset, err := s.AssessmentRepo.LatestReset(assessmentID, studentID)
	if err != nil {
		return nil, err
	}
	secs, limited := Remaining(attempt, a, reset, time.Now())

	if limited && secs == 0 {
		result, err := s.finalize(a, attempt, nil, model.AttemptExpired, "expire")
		if err != nil {
			logger.Log.Error("forced expiry failed, attempt left in progress",
				zap.Uint("assessmentID", assessmentID),
				zap.Uint("attemptID", attempt.ID),
				zap.Uint("studentID", studentID),
				zap.Error(err))
			return nil, util.ErrAutoSubmitFailed
		}
		monitoring.AutoSubmitCounter.WithLabelValues("poll").Inc()
		return &TimeStatus{
			Status:        model.AttemptExpired,
			AutoSubmitted: true,
			Score:         &result.Score,
			Redirect:      "results",
		}, nil
	}

	if !limited {
		secs = -1
	}
	return &TimeStatus{RemainingSeconds: secs, Status: attempt.Status}, nil
}

// SyncClock reports the server time against the client's.
func (s *AttemptService) SyncClock(clientTimestamp int64) ClockSync {
	return SyncClock(clientTimestamp, time.Now())
}

// SaveAnswer is the autosave path: a pure upsert into the answer ledger
// with no grading side effects. Terminal-state exclusivity is enforced
// by the state machine, not here, so a save racing a forced expiry may
// lose; that is accepted.
func (s *AttemptService) SaveAnswer(studentID, assessmentID, questionID uint, text string) (*model.Answer, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	if err := s.checkAccess(studentID, a, time.Now()); err != nil {
		return nil, err
	}
	q, err := s.AssessmentRepo.FindQuestionByID(questionID)
	if err != nil || q.AssessmentID != assessmentID {
		return nil, util.ErrQuestionNotFound
	}

	// Pooled attempts may only answer questions in their drawn subset.
	if a.UsePooling {
		attempt, err := s.AttemptRepo.Find(assessmentID, studentID)
		if err != nil {
			return nil, util.ErrAttemptNotFound
		}
		order, err := model.ParseQuestionIDList(attempt.QuestionOrder)
		if err != nil || !order.Contains(questionID) {
			return nil, util.ErrQuestionNotFound
		}
	}

	return s.AttemptRepo.UpsertAnswer(s.DB, assessmentID, studentID, questionID, text)
}

// Submit finalizes an in-progress attempt with the student's explicit
// submission, persisting any answers carried on the request first.
func (s *AttemptService) Submit(studentID, assessmentID uint, answers []QuestionAnswer) (*model.Result, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	attempt, err := s.AttemptRepo.Find(assessmentID, studentID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.IsTerminal() {
		return nil, util.ErrAttemptAlreadyEnded
	}
	if err := s.checkAccess(studentID, a, time.Now()); err != nil {
		return nil, err
	}

	result, err := s.finalize(a, attempt, answers, model.AttemptCompleted, "submit")
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AutoSubmit is the client-timer fallback to the poll-triggered expiry.
// Arriving while the server still sees time left is accepted, not
// rejected, so a fast client clock cannot strand the student; it is
// logged for audit.
func (s *AttemptService) AutoSubmit(studentID, assessmentID uint) (*model.Result, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	attempt, err := s.AttemptRepo.Find(assessmentID, studentID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.IsTerminal() {
		return nil, util.ErrAttemptAlreadyEnded
	}

	reset, err := s.AssessmentRepo.LatestReset(assessmentID, studentID)
	if err != nil {
		return nil, err
	}
	if secs, limited := Remaining(attempt, a, reset, time.Now()); !limited || secs > 0 {
		logger.Log.Warn("forced submit accepted with server time remaining",
			zap.Uint("assessmentID", assessmentID),
			zap.Uint("attemptID", attempt.ID),
			zap.Uint("studentID", studentID),
			zap.Int64("remainingSeconds", secs))
	}

	result, err := s.finalize(a, attempt, nil, model.AttemptExpired, "expire")
	if err != nil {
		return nil, err
	}
	monitoring.AutoSubmitCounter.WithLabelValues("client").Inc()
	return result, nil
}

// Regrade recomputes the result of an already-terminal attempt. Same
// idempotent upsert as the submit paths; teacher/admin only (enforced
// at the route).
func (s *AttemptService) Regrade(assessmentID, studentID uint) (*model.Result, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	attempt, err := s.AttemptRepo.Find(assessmentID, studentID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if !attempt.IsTerminal() {
		return nil, util.ErrAttemptNotEnded
	}

	var result *model.Result
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var gerr error
		result, gerr = s.gradeAndCommit(tx, a, attempt)
		return gerr
	})
	if err != nil {
		return nil, err
	}
	monitoring.GradingRuns.WithLabelValues("regrade").Inc()
	return result, nil
}

// finalize runs the single terminal transaction: final answer upserts,
// status flip, grading over the selected set, per-question score
// writeback, result upsert. Any failure rolls the whole thing back and
// the attempt stays in progress for a retry.
func (s *AttemptService) finalize(a *model.Assessment, attempt *model.Attempt, final []QuestionAnswer, status, kind string) (*model.Result, error) {
	var result *model.Result
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, ans := range final {
			if _, err := s.AttemptRepo.UpsertAnswer(tx, a.ID, attempt.StudentID, ans.QuestionID, ans.AnswerText); err != nil {
				return err
			}
		}

		now := time.Now()
		attempt.Status = status
		attempt.EndTime = &now
		if err := tx.Save(attempt).Error; err != nil {
			return err
		}

		var gerr error
		result, gerr = s.gradeAndCommit(tx, a, attempt)
		return gerr
	})
	if err != nil {
		attempt.Status = model.AttemptInProgress
		attempt.EndTime = nil
		logger.Log.Error("attempt finalize rolled back",
			zap.Uint("assessmentID", a.ID),
			zap.Uint("attemptID", attempt.ID),
			zap.Uint("studentID", attempt.StudentID),
			zap.String("kind", kind),
			zap.Error(err))
		return nil, err
	}
	monitoring.GradingRuns.WithLabelValues(kind).Inc()
	return result, nil
}

// gradeAndCommit runs the selector and grading engine inside the
// caller's transaction and commits scores and the result row.
func (s *AttemptService) gradeAndCommit(tx *gorm.DB, a *model.Assessment, attempt *model.Attempt) (*model.Result, error) {
	var bank []model.Question
	if err := tx.Preload("Options").
		Where("assessment_id = ?", a.ID).
		Order("id asc").
		Find(&bank).Error; err != nil {
		return nil, err
	}

	selected := grading.SelectQuestions(a, attempt, bank)
	if a.UsePooling && len(selected) == 0 {
		logger.Log.Error("pooling yielded no questions, grading as zero",
			zap.Uint("assessmentID", a.ID),
			zap.Uint("attemptID", attempt.ID),
			zap.Uint("studentID", attempt.StudentID))
	}

	byID := make(map[uint]model.Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}

	rows, err := s.AttemptRepo.ListAnswersTx(tx, a.ID, attempt.StudentID)
	if err != nil {
		return nil, err
	}
	answers := make(map[uint]string, len(rows))
	for _, row := range rows {
		answers[row.QuestionID] = row.AnswerText
	}

	outcome := grading.Grade(selected, byID, answers)

	for questionID, score := range outcome.PerQuestion {
		if _, answered := answers[questionID]; !answered {
			continue
		}
		if err := s.AttemptRepo.SetAnswerScore(tx, a.ID, attempt.StudentID, questionID, score); err != nil {
			return nil, err
		}
	}

	if err := s.AttemptRepo.UpsertResult(tx, a.ID, attempt.StudentID, outcome.Total); err != nil {
		return nil, err
	}

	return &model.Result{
		AssessmentID: a.ID,
		StudentID:    attempt.StudentID,
		Score:        outcome.Total,
		Status:       model.ResultCompleted,
	}, nil
}

// GetResult returns the student's own result.
func (s *AttemptService) GetResult(studentID, assessmentID uint) (*model.Result, error) {
	res, err := s.AttemptRepo.FindResult(assessmentID, studentID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	return res, nil
}
