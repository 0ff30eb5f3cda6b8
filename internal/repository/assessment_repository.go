package repository

import (
	"github.com/AtizaD/school-assessment-system-sub006/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

func (r *AssessmentRepository) List(classID uint, page, limit int) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64
	query := r.DB.Model(&model.Assessment{})
	if classID > 0 {
		query = query.Where("class_id = ?", classID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("date desc, created_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

// ListForClasses returns non-draft assessments for the given classes,
// the student-facing listing.
func (r *AssessmentRepository) ListForClasses(classIDs []uint) ([]model.Assessment, error) {
	var as []model.Assessment
	if len(classIDs) == 0 {
		return as, nil
	}
	err := r.DB.Where("class_id IN ? AND status <> ?", classIDs, model.AssessmentDraft).
		Order("date desc").
		Find(&as).Error
	return as, err
}

// CountAttempts reports how many attempts exist for an assessment,
// used to lock its configuration once work has started.
func (r *AssessmentRepository) CountAttempts(assessmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error
	return count, err
}

// Questions

func (r *AssessmentRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *AssessmentRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Options").First(&q, id).Error
	return &q, err
}

// ListQuestions returns the full bank in creation order, options loaded.
func (r *AssessmentRepository) ListQuestions(assessmentID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Preload("Options").
		Where("assessment_id = ?", assessmentID).
		Order("id asc").
		Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) UpdateQuestion(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *AssessmentRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

func (r *AssessmentRepository) CreateOption(o *model.QuestionOption) error {
	return r.DB.Create(o).Error
}

func (r *AssessmentRepository) DeleteOption(id uint) error {
	return r.DB.Delete(&model.QuestionOption{}, id).Error
}

// Resets

func (r *AssessmentRepository) CreateReset(reset *model.AssessmentReset) error {
	return r.DB.Create(reset).Error
}

// LatestReset returns the most recent reset for the pair, or nil when
// none exists.
func (r *AssessmentRepository) LatestReset(assessmentID, studentID uint) (*model.AssessmentReset, error) {
	var reset model.AssessmentReset
	err := r.DB.Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		Order("created_at desc").
		First(&reset).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reset, nil
}
