package fee

import (
	"errors"
	"time"
)

const (
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

const (
	TypeTuition    = "tuition"
	TypeTransport  = "transport"
	TypeLibrary    = "library"
	TypeExamination = "examination"
	TypeMisc       = "misc"
)

var (
	ErrFeeNotFound     = errors.New("fee not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrFeeAlreadyPaid  = errors.New("fee is already fully paid")
)

// Fee is a charge against a student. Amount is in minor units (cents)
// to avoid float arithmetic on money.
type Fee struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	StudentID int64     `json:"student_id" gorm:"column:student_id;not null;index"`
	FeeType   string    `json:"fee_type" gorm:"column:fee_type;not null"`
	Amount    int64     `json:"amount" gorm:"not null"`
	Currency  string    `json:"currency" gorm:"not null;default:'IDR'"`
	DueDate   time.Time `json:"due_date" gorm:"column:due_date;type:date;not null"`
	Status    string    `json:"status" gorm:"not null;default:'unpaid'"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Fee) TableName() string {
	return "fees"
}

// Payment is one settlement against a fee. ReceiptNo is generated at
// record time and never reused.
type Payment struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	FeeID      int64     `json:"fee_id" gorm:"column:fee_id;not null;index"`
	Amount     int64     `json:"amount" gorm:"not null"`
	Method     string    `json:"method" gorm:"not null"`
	Reference  *string   `json:"reference,omitempty"`
	ReceiptNo  string    `json:"receipt_no" gorm:"column:receipt_no;not null;uniqueIndex"`
	RecordedBy int64     `json:"recorded_by" gorm:"column:recorded_by;not null"`
	PaidAt     time.Time `json:"paid_at" gorm:"column:paid_at;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Payment) TableName() string {
	return "fee_payments"
}

func ValidFeeType(feeType string) bool {
	switch feeType {
	case TypeTuition, TypeTransport, TypeLibrary, TypeExamination, TypeMisc:
		return true
	}
	return false
}

func ValidMethod(method string) bool {
	switch method {
	case "cash", "bank_transfer", "card", "online":
		return true
	}
	return false
}
