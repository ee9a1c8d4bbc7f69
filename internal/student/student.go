package student

import (
	"errors"
	"time"

	studentDatamodel "github.com/hanifm/school-management/internal/core/datamodel/student"
)

const (
	StatusActive      = "active"
	StatusSuspended   = "suspended"
	StatusGraduated   = "graduated"
	StatusTransferred = "transferred"
)

var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrDuplicateAdmission = errors.New("admission number already in use")
	ErrUnauthorizedAccess = errors.New("unauthorized access to student record")
)

type Student struct {
	ID            int64      `json:"id"`
	UserID        *int64     `json:"user_id,omitempty"`
	AdmissionNo   string     `json:"admission_no"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	ClassroomID   *int64     `json:"classroom_id,omitempty"`
	GuardianName  *string    `json:"guardian_name,omitempty"`
	GuardianPhone *string    `json:"guardian_phone,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Status        string     `json:"status"`
	AdmittedAt    time.Time  `json:"admitted_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (s *Student) IsEnrolled() bool {
	return s.Status == StatusActive
}

func (s *Student) AssignClassroom(classroomID int64) {
	s.ClassroomID = &classroomID
	s.UpdatedAt = time.Now()
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusSuspended, StatusGraduated, StatusTransferred:
		return true
	}
	return false
}

func ToDataModel(s *Student) *studentDatamodel.Student {
	return &studentDatamodel.Student{
		ID:            s.ID,
		UserID:        s.UserID,
		AdmissionNo:   s.AdmissionNo,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		DateOfBirth:   s.DateOfBirth,
		Gender:        s.Gender,
		ClassroomID:   s.ClassroomID,
		GuardianName:  s.GuardianName,
		GuardianPhone: s.GuardianPhone,
		Phone:         s.Phone,
		Address:       s.Address,
		Status:        s.Status,
		AdmittedAt:    s.AdmittedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func FromDataModel(s *studentDatamodel.Student) *Student {
	return &Student{
		ID:            s.ID,
		UserID:        s.UserID,
		AdmissionNo:   s.AdmissionNo,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		DateOfBirth:   s.DateOfBirth,
		Gender:        s.Gender,
		ClassroomID:   s.ClassroomID,
		GuardianName:  s.GuardianName,
		GuardianPhone: s.GuardianPhone,
		Phone:         s.Phone,
		Address:       s.Address,
		Status:        s.Status,
		AdmittedAt:    s.AdmittedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
