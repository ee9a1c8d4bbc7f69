package fee

import (
	"time"

	"github.com/hanifm/school-management/internal"
)

type CreateFeeDTO struct {
	StudentID int64     `json:"student_id"`
	FeeType   string    `json:"fee_type"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	DueDate   time.Time `json:"due_date"`
}

func (dto CreateFeeDTO) Validate() error {
	if dto.StudentID <= 0 {
		return internal.NewValidationFieldError("student_id", "student_id is required", internal.ErrCodeValidationFailed)
	}
	if !ValidFeeType(dto.FeeType) {
		return internal.NewValidationFieldError("fee_type", "fee_type must be one of tuition, transport, library, examination, misc", internal.ErrCodeValidationFailed)
	}
	if dto.Amount <= 0 {
		return internal.NewValidationFieldError("amount", "amount must be positive", internal.ErrCodeInvalidAmount)
	}
	if dto.DueDate.IsZero() {
		return internal.NewValidationFieldError("due_date", "due_date is required", internal.ErrCodeInvalidDate)
	}
	return nil
}

type RecordPaymentDTO struct {
	Amount    int64   `json:"amount"`
	Method    string  `json:"method"`
	Reference *string `json:"reference,omitempty"`
}

func (dto RecordPaymentDTO) Validate() error {
	if dto.Amount <= 0 {
		return internal.NewValidationFieldError("amount", "amount must be positive", internal.ErrCodeInvalidAmount)
	}
	if !ValidMethod(dto.Method) {
		return internal.NewValidationFieldError("method", "method must be one of cash, bank_transfer, card, online", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ListFeesFilter struct {
	StudentID int64
	Status    string
	FeeType   string
}
