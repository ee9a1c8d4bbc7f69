package assignment

import (
	"time"

	"github.com/hanifm/school-management/internal"
)

type CreateAssignmentDTO struct {
	ClassroomID int64     `json:"classroom_id"`
	Subject     string    `json:"subject"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	MaxScore    int       `json:"max_score"`
}

func (dto CreateAssignmentDTO) Validate() error {
	if dto.ClassroomID <= 0 {
		return internal.NewValidationFieldError("classroom_id", "classroom_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.Subject == "" {
		return internal.NewValidationFieldError("subject", "subject is required", internal.ErrCodeValidationFailed)
	}
	if dto.Title == "" {
		return internal.NewValidationFieldError("title", "title is required", internal.ErrCodeValidationFailed)
	}
	if dto.DueDate.IsZero() {
		return internal.NewValidationFieldError("due_date", "due_date is required", internal.ErrCodeInvalidDate)
	}
	if dto.MaxScore <= 0 || dto.MaxScore > 1000 {
		return internal.NewValidationFieldError("max_score", "max_score must be between 1 and 1000", internal.ErrCodeInvalidScore)
	}
	return nil
}

type UpdateAssignmentDTO struct {
	Subject     *string    `json:"subject,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	MaxScore    *int       `json:"max_score,omitempty"`
}

func (dto UpdateAssignmentDTO) Validate() error {
	if dto.Title != nil && *dto.Title == "" {
		return internal.NewValidationFieldError("title", "title cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.MaxScore != nil && (*dto.MaxScore <= 0 || *dto.MaxScore > 1000) {
		return internal.NewValidationFieldError("max_score", "max_score must be between 1 and 1000", internal.ErrCodeInvalidScore)
	}
	return nil
}

type SubmitAssignmentDTO struct {
	Content *string `json:"content,omitempty"`
}

type GradeSubmissionDTO struct {
	Score    int     `json:"score"`
	Feedback *string `json:"feedback,omitempty"`
}

func (dto GradeSubmissionDTO) Validate() error {
	if dto.Score < 0 {
		return internal.NewValidationFieldError("score", "score cannot be negative", internal.ErrCodeInvalidScore)
	}
	return nil
}
