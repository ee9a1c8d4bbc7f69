package attendance

import (
	"time"

	"github.com/hanifm/school-management/internal"
)

type MarkEntryDTO struct {
	StudentID int64   `json:"student_id"`
	Status    string  `json:"status"`
	Note      *string `json:"note,omitempty"`
}

// BulkMarkDTO marks a whole classroom for one date in a single request.
type BulkMarkDTO struct {
	ClassroomID int64          `json:"classroom_id"`
	Date        time.Time      `json:"date"`
	Entries     []MarkEntryDTO `json:"entries"`
}

func (dto BulkMarkDTO) Validate() error {
	if dto.ClassroomID <= 0 {
		return internal.NewValidationFieldError("classroom_id", "classroom_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.Date.IsZero() {
		return internal.NewValidationFieldError("date", "date is required", internal.ErrCodeInvalidDate)
	}
	if dto.Date.After(time.Now()) {
		return internal.NewValidationFieldError("date", "date cannot be in the future", internal.ErrCodeInvalidDate)
	}
	if len(dto.Entries) == 0 {
		return internal.NewValidationFieldError("entries", "entries cannot be empty", internal.ErrCodeValidationFailed)
	}
	for _, entry := range dto.Entries {
		if entry.StudentID <= 0 {
			return internal.NewValidationFieldError("entries", "every entry needs a student_id", internal.ErrCodeValidationFailed)
		}
		if !ValidStatus(entry.Status) {
			return internal.NewValidationFieldError("entries", "status must be one of present, absent, late, excused", internal.ErrCodeInvalidStatus)
		}
	}
	return nil
}

type ListFilter struct {
	StudentID   int64
	ClassroomID int64
	From        time.Time
	To          time.Time
}
