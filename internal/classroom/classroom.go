package classroom

import (
	"errors"
	"time"
)

var (
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrDuplicateName     = errors.New("classroom with this name and section already exists")
	ErrCapacityExceeded  = errors.New("classroom capacity exceeded")
	ErrClassroomNotEmpty = errors.New("classroom still has enrolled students")
)

// Classroom is one class group for an academic year, e.g. "Grade 7 / B".
type Classroom struct {
	ID                int64     `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"not null"`
	Section           string    `json:"section" gorm:"not null"`
	AcademicYear      string    `json:"academic_year" gorm:"column:academic_year;not null"`
	Capacity          int       `json:"capacity" gorm:"not null;default:30"`
	HomeroomTeacherID *int64    `json:"homeroom_teacher_id,omitempty" gorm:"column:homeroom_teacher_id"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Classroom) TableName() string {
	return "classrooms"
}

func (c *Classroom) AssignHomeroomTeacher(teacherID int64) {
	c.HomeroomTeacherID = &teacherID
	c.UpdatedAt = time.Now()
}
