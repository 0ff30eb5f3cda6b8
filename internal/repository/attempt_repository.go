package repository

import (
	"github.com/AtizaD/school-assessment-system-sub006/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) Find(assessmentID, studentID uint) (*model.Attempt, error) {
	var a model.Attempt
	err := r.DB.Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertAnswer overwrites the answer row for the key, creating it on
// first save. Each autosave is its own transaction; the storage layer's
// row locking serializes concurrent saves for the same key.
func (r *AttemptRepository) UpsertAnswer(tx *gorm.DB, assessmentID, studentID, questionID uint, text string) (*model.Answer, error) {
	var ans model.Answer
	err := tx.Where("assessment_id = ? AND student_id = ? AND question_id = ?",
		assessmentID, studentID, questionID).First(&ans).Error
	if err == gorm.ErrRecordNotFound {
		ans = model.Answer{
			AssessmentID: assessmentID,
			StudentID:    studentID,
			QuestionID:   questionID,
			AnswerText:   text,
		}
		if err := tx.Create(&ans).Error; err != nil {
			return nil, err
		}
		return &ans, nil
	}
	if err != nil {
		return nil, err
	}
	ans.AnswerText = text
	ans.Score = nil
	if err := tx.Save(&ans).Error; err != nil {
		return nil, err
	}
	return &ans, nil
}

func (r *AttemptRepository) ListAnswers(assessmentID, studentID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		Find(&answers).Error
	return answers, err
}

func (r *AttemptRepository) ListAnswersTx(tx *gorm.DB, assessmentID, studentID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := tx.Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		Find(&answers).Error
	return answers, err
}

// SetAnswerScore writes the graded score back onto the ledger row.
func (r *AttemptRepository) SetAnswerScore(tx *gorm.DB, assessmentID, studentID, questionID uint, score float64) error {
	return tx.Model(&model.Answer{}).
		Where("assessment_id = ? AND student_id = ? AND question_id = ?",
			assessmentID, studentID, questionID).
		Update("score", score).Error
}

// UpsertResult inserts the result or overwrites it in place, so
// re-grading stays idempotent.
func (r *AttemptRepository) UpsertResult(tx *gorm.DB, assessmentID, studentID uint, score float64) error {
	var res model.Result
	err := tx.Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		First(&res).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(&model.Result{
			AssessmentID: assessmentID,
			StudentID:    studentID,
			Score:        score,
			Status:       model.ResultCompleted,
		}).Error
	}
	if err != nil {
		return err
	}
	res.Score = score
	res.Status = model.ResultCompleted
	return tx.Save(&res).Error
}

func (r *AttemptRepository) FindResult(assessmentID, studentID uint) (*model.Result, error) {
	var res model.Result
	err := r.DB.Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *AttemptRepository) ListResults(assessmentID uint, page, limit int) ([]model.Result, int64, error) {
	var results []model.Result
	var total int64
	query := r.DB.Model(&model.Result{}).Where("assessment_id = ?", assessmentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("score desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}
