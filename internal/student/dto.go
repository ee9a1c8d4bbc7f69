package student

import (
	"time"

	"github.com/hanifm/school-management/internal"
)

// CreateStudentDTO represents the request payload for admitting a student
type CreateStudentDTO struct {
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
	AdmittedAt    *time.Time `json:"admitted_at,omitempty"`
}

func (dto CreateStudentDTO) Validate() error {
	if dto.AdmissionNo == "" {
		return internal.NewValidationFieldError("admission_no", "admission_no is required", internal.ErrCodeValidationFailed)
	}
	if dto.FirstName == "" {
		return internal.NewValidationFieldError("first_name", "first_name is required", internal.ErrCodeValidationFailed)
	}
	if dto.LastName == "" {
		return internal.NewValidationFieldError("last_name", "last_name is required", internal.ErrCodeValidationFailed)
	}
	if dto.DateOfBirth != nil && dto.DateOfBirth.After(time.Now()) {
		return internal.NewValidationFieldError("date_of_birth", "date_of_birth cannot be in the future", internal.ErrCodeInvalidDate)
	}
	if dto.Gender != nil && *dto.Gender != "male" && *dto.Gender != "female" && *dto.Gender != "other" {
		return internal.NewValidationFieldError("gender", "gender must be one of male, female, other", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateStudentDTO carries partial updates; nil fields are left untouched.
type UpdateStudentDTO struct {
	FirstName     *string    `json:"first_name,omitempty"`
	LastName      *string    `json:"last_name,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	ClassroomID   *int64     `json:"classroom_id,omitempty"`
	GuardianName  *string    `json:"guardian_name,omitempty"`
	GuardianPhone *string    `json:"guardian_phone,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Status        *string    `json:"status,omitempty"`
}

func (dto UpdateStudentDTO) Validate() error {
	if dto.FirstName != nil && *dto.FirstName == "" {
		return internal.NewValidationFieldError("first_name", "first_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.LastName != nil && *dto.LastName == "" {
		return internal.NewValidationFieldError("last_name", "last_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return internal.NewValidationFieldError("status", "status must be one of active, suspended, graduated, transferred", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// ListStudentsFilter narrows list queries.
type ListStudentsFilter struct {
	ClassroomID *int64
	Status      string
}
