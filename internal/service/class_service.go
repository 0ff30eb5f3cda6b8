package service

import (
	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
	"github.com/AtizaD/school-assessment-system-sub006/internal/repository"
	"github.com/AtizaD/school-assessment-system-sub006/internal/util"
)

type ClassService struct {
	ClassRepo *repository.ClassRepository
	UserRepo  *repository.UserRepository
}

func NewClassService(classRepo *repository.ClassRepository, userRepo *repository.UserRepository) *ClassService {
	return &ClassService{ClassRepo: classRepo, UserRepo: userRepo}
}

type CreateClassInput struct {
	Name string `json:"name" binding:"required"`
	Form string `json:"form"`
}

func (s *ClassService) Create(in CreateClassInput, teacherID uint) (*model.Class, error) {
	class := &model.Class{Name: in.Name, Form: in.Form, TeacherID: teacherID}
	if err := s.ClassRepo.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) Get(id uint) (*model.Class, error) {
	return s.ClassRepo.FindByID(id)
}

func (s *ClassService) List(page, limit int) ([]model.Class, int64, error) {
	return s.ClassRepo.List(page, limit)
}

// Enroll adds the student to the class roster. Enrolling twice is a
// no-op rather than an error.
func (s *ClassService) Enroll(classID, studentID uint) error {
	if _, err := s.ClassRepo.FindByID(classID); err != nil {
		return err
	}
	user, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return util.ErrUserNotFound
	}
	if user.Role != model.Student {
		return util.ErrPermissionDenied
	}
	return s.ClassRepo.Enroll(classID, studentID)
}

func (s *ClassService) Unenroll(classID, studentID uint) error {
	return s.ClassRepo.Unenroll(classID, studentID)
}

func (s *ClassService) ListStudents(classID uint) ([]model.User, error) {
	return s.ClassRepo.ListStudents(classID)
}

// ListAllStudents pages through every student account, for building
// rosters.
func (s *ClassService) ListAllStudents(page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.ListStudents(page, limit)
}
