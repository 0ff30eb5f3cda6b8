package model

// swagger:model Class
type Class struct {
	BaseModel
	Name      string `gorm:"size:255;not null" json:"name"`
	Form      string `gorm:"size:50" json:"form"` // e.g. "Form 1", "JHS 2"
	TeacherID uint   `gorm:"index;type:bigint unsigned" json:"teacherId"`
}

func (Class) TableName() string {
	return "classes"
}

// ClassStudent links an enrolled student to a class. The attempt access
// guard reads this table to confirm enrollment.
type ClassStudent struct {
	BaseModel
	ClassID   uint `gorm:"index:idx_class_student,unique;type:bigint unsigned" json:"classId"`
	StudentID uint `gorm:"index:idx_class_student,unique;type:bigint unsigned" json:"studentId"`
}

func (ClassStudent) TableName() string {
	return "class_students"
}
