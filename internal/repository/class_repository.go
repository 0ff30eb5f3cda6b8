package repository

import (
	"github.com/AtizaD/school-assessment-system-sub006/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *ClassRepository) FindByID(id uint) (*model.Class, error) {
	var c model.Class
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *ClassRepository) List(page, limit int) ([]model.Class, int64, error) {
	var cs []model.Class
	var total int64
	query := r.DB.Model(&model.Class{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *ClassRepository) Enroll(classID, studentID uint) error {
	var count int64
	r.DB.Model(&model.ClassStudent{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count)
	if count > 0 {
		return nil
	}
	return r.DB.Create(&model.ClassStudent{ClassID: classID, StudentID: studentID}).Error
}

func (r *ClassRepository) Unenroll(classID, studentID uint) error {
	return r.DB.Where("class_id = ? AND student_id = ?", classID, studentID).
		Delete(&model.ClassStudent{}).Error
}

// IsEnrolled reports whether the student belongs to the class.
func (r *ClassRepository) IsEnrolled(classID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClassStudent{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *ClassRepository) ListStudents(classID uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.Table("users").
		Select("users.*").
		Joins("JOIN class_students ON class_students.student_id = users.id AND class_students.deleted_at IS NULL").
		Where("class_students.class_id = ?", classID).
		Where("users.deleted_at IS NULL").
		Order("users.name asc").
		Find(&students).Error
	return students, err
}

// ClassIDsForStudent returns the ids of every class the student is
// enrolled in.
func (r *ClassRepository) ClassIDsForStudent(studentID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.ClassStudent{}).
		Where("student_id = ?", studentID).
		Pluck("class_id", &ids).Error
	return ids, err
}
