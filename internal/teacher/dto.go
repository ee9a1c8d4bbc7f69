package teacher

import (
	"time"

	"github.com/hanifm/school-management/internal"
)

type CreateTeacherDTO struct {
	EmployeeNo    string     `json:"employee_no"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Qualification *string    `json:"qualification,omitempty"`
	Subjects      *string    `json:"subjects,omitempty"`
	HiredAt       *time.Time `json:"hired_at,omitempty"`
}

func (dto CreateTeacherDTO) Validate() error {
	if dto.EmployeeNo == "" {
		return internal.NewValidationFieldError("employee_no", "employee_no is required", internal.ErrCodeValidationFailed)
	}
	if dto.FirstName == "" {
		return internal.NewValidationFieldError("first_name", "first_name is required", internal.ErrCodeValidationFailed)
	}
	if dto.LastName == "" {
		return internal.NewValidationFieldError("last_name", "last_name is required", internal.ErrCodeValidationFailed)
	}
	if dto.HiredAt != nil && dto.HiredAt.After(time.Now()) {
		return internal.NewValidationFieldError("hired_at", "hired_at cannot be in the future", internal.ErrCodeInvalidDate)
	}
	return nil
}

type UpdateTeacherDTO struct {
	FirstName     *string    `json:"first_name,omitempty"`
	LastName      *string    `json:"last_name,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Qualification *string    `json:"qualification,omitempty"`
	Subjects      *string    `json:"subjects,omitempty"`
	HiredAt       *time.Time `json:"hired_at,omitempty"`
	Status        *string    `json:"status,omitempty"`
}

func (dto UpdateTeacherDTO) Validate() error {
	if dto.FirstName != nil && *dto.FirstName == "" {
		return internal.NewValidationFieldError("first_name", "first_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.LastName != nil && *dto.LastName == "" {
		return internal.NewValidationFieldError("last_name", "last_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return internal.NewValidationFieldError("status", "status must be one of active, on_leave, resigned", internal.ErrCodeInvalidStatus)
	}
	return nil
}
