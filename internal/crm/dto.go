package crm

import (
	"strings"

	"github.com/hanifm/school-management/internal"
)

type CreateLeadDTO struct {
	Name   string  `json:"name"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Source string  `json:"source"`
	Note   *string `json:"note,omitempty"`
}

func (dto CreateLeadDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Email == nil && dto.Phone == nil {
		return internal.NewValidationFieldError("email", "a lead needs an email or a phone number", internal.ErrCodeValidationFailed)
	}
	if dto.Email != nil && !strings.Contains(*dto.Email, "@") {
		return internal.NewValidationFieldError("email", "email is invalid", internal.ErrCodeValidationFailed)
	}
	return nil
}

type MoveLeadDTO struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

func (dto MoveLeadDTO) Validate() error {
	if !ValidStatus(dto.Status) {
		return internal.NewValidationFieldError("status", "status must be one of new, contacted, qualified, converted, lost", internal.ErrCodeInvalidStatus)
	}
	return nil
}

type ConvertLeadDTO struct {
	StudentID int64 `json:"student_id"`
}

func (dto ConvertLeadDTO) Validate() error {
	if dto.StudentID <= 0 {
		return internal.NewValidationFieldError("student_id", "student_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ListLeadsFilter struct {
	Status     string
	AssignedTo int64
}
