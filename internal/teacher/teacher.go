package teacher

import (
	"errors"
	"time"

	teacherDatamodel "github.com/hanifm/school-management/internal/core/datamodel/teacher"
)

const (
	StatusActive   = "active"
	StatusOnLeave  = "on_leave"
	StatusResigned = "resigned"
)

var (
	ErrTeacherNotFound     = errors.New("teacher not found")
	ErrDuplicateEmployeeNo = errors.New("employee number already in use")
)

type Teacher struct {
	ID            int64      `json:"id"`
	UserID        *int64     `json:"user_id,omitempty"`
	EmployeeNo    string     `json:"employee_no"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Qualification *string    `json:"qualification,omitempty"`
	Subjects      *string    `json:"subjects,omitempty"`
	HiredAt       *time.Time `json:"hired_at,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (t *Teacher) IsTeaching() bool {
	return t.Status == StatusActive
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusOnLeave, StatusResigned:
		return true
	}
	return false
}

func ToDataModel(t *Teacher) *teacherDatamodel.Teacher {
	return &teacherDatamodel.Teacher{
		ID:            t.ID,
		UserID:        t.UserID,
		EmployeeNo:    t.EmployeeNo,
		FirstName:     t.FirstName,
		LastName:      t.LastName,
		Email:         t.Email,
		Phone:         t.Phone,
		Qualification: t.Qualification,
		Subjects:      t.Subjects,
		HiredAt:       t.HiredAt,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func FromDataModel(t *teacherDatamodel.Teacher) *Teacher {
	return &Teacher{
		ID:            t.ID,
		UserID:        t.UserID,
		EmployeeNo:    t.EmployeeNo,
		FirstName:     t.FirstName,
		LastName:      t.LastName,
		Email:         t.Email,
		Phone:         t.Phone,
		Qualification: t.Qualification,
		Subjects:      t.Subjects,
		HiredAt:       t.HiredAt,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
