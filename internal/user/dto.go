package user

import (
	"strings"

	"github.com/hanifm/school-management/internal"
	"github.com/hanifm/school-management/internal/auth"
)

type CreateUserDTO struct {
	Email     string  `json:"email"`
	Username  *string `json:"username,omitempty"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
}

func (dto CreateUserDTO) Validate() error {
	if !strings.Contains(dto.Email, "@") {
		return internal.NewValidationFieldError("email", "email is invalid", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.FirstName) == "" {
		return internal.NewValidationFieldError("first_name", "first_name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.LastName) == "" {
		return internal.NewValidationFieldError("last_name", "last_name is required", internal.ErrCodeValidationFailed)
	}
	if !auth.Role(dto.Role).Valid() {
		return internal.NewValidationFieldError("role", "role must be one of admin, teacher, student, parent, staff", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateUserDTO struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      *string `json:"role,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.FirstName == nil && dto.LastName == nil && dto.Phone == nil && dto.Role == nil {
		return internal.NewValidationFieldError("first_name", "nothing to update", internal.ErrCodeValidationFailed)
	}
	if dto.FirstName != nil && strings.TrimSpace(*dto.FirstName) == "" {
		return internal.NewValidationFieldError("first_name", "first_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.LastName != nil && strings.TrimSpace(*dto.LastName) == "" {
		return internal.NewValidationFieldError("last_name", "last_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Role != nil && !auth.Role(*dto.Role).Valid() {
		return internal.NewValidationFieldError("role", "role must be one of admin, teacher, student, parent, staff", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ListUsersFilter struct {
	Role   string
	Active *bool
}
