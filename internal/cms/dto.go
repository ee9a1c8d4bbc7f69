package cms

import (
	"github.com/hanifm/school-management/internal"
)

type CreatePageDTO struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (dto CreatePageDTO) Validate() error {
	if dto.Slug == "" {
		return internal.NewValidationFieldError("slug", "slug is required", internal.ErrCodeValidationFailed)
	}
	if !ValidSlug(dto.Slug) {
		return internal.NewValidationFieldError("slug", "slug must be lowercase letters, digits and hyphens", internal.ErrCodeValidationFailed)
	}
	if dto.Title == "" {
		return internal.NewValidationFieldError("title", "title is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Title) > 200 {
		return internal.NewValidationFieldError("title", "title must be at most 200 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdatePageDTO struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

func (dto UpdatePageDTO) Validate() error {
	if dto.Title == nil && dto.Body == nil {
		return internal.NewValidationFieldError("title", "nothing to update", internal.ErrCodeValidationFailed)
	}
	if dto.Title != nil {
		if *dto.Title == "" {
			return internal.NewValidationFieldError("title", "title cannot be empty", internal.ErrCodeValidationFailed)
		}
		if len(*dto.Title) > 200 {
			return internal.NewValidationFieldError("title", "title must be at most 200 characters", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}
