package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeFeePaymentRecorded  = "fee.payment_recorded"
	EventTypeUserPasswordChanged = "user.password_changed"
	EventTypeLeadConverted       = "crm.lead_converted"
)

type FeePaymentRecordedEvent struct {
	BaseEvent
	FeeID     int64  `json:"fee_id"`
	StudentID int64  `json:"student_id"`
	PaymentID int64  `json:"payment_id"`
	Amount    int64  `json:"amount"`
	FeeStatus string `json:"fee_status"`
}

func NewFeePaymentRecordedEvent(feeID, studentID, paymentID, amount int64, feeStatus string) *FeePaymentRecordedEvent {
	return &FeePaymentRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeFeePaymentRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"fee_id":     feeID,
				"student_id": studentID,
				"payment_id": paymentID,
				"amount":     amount,
				"fee_status": feeStatus,
			},
		},
		FeeID:     feeID,
		StudentID: studentID,
		PaymentID: paymentID,
		Amount:    amount,
		FeeStatus: feeStatus,
	}
}

type UserPasswordChangedEvent struct {
	BaseEvent
	UserID int64 `json:"user_id"`
}

func NewUserPasswordChangedEvent(userID int64) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserPasswordChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
			},
		},
		UserID: userID,
	}
}

type LeadConvertedEvent struct {
	BaseEvent
	LeadID    int64 `json:"lead_id"`
	StudentID int64 `json:"student_id"`
}

func NewLeadConvertedEvent(leadID, studentID int64) *LeadConvertedEvent {
	return &LeadConvertedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeadConverted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"lead_id":    leadID,
				"student_id": studentID,
			},
		},
		LeadID:    leadID,
		StudentID: studentID,
	}
}
