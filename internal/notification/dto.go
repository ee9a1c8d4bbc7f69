package notification

import (
	"github.com/hanifm/school-management/internal"
)

type BroadcastDTO struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Role  string `json:"role,omitempty"`
}

func (dto BroadcastDTO) Validate() error {
	if dto.Title == "" {
		return internal.NewValidationFieldError("title", "title is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Title) > 200 {
		return internal.NewValidationFieldError("title", "title must be at most 200 characters", internal.ErrCodeValidationFailed)
	}
	if dto.Body == "" {
		return internal.NewValidationFieldError("body", "body is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
