package fee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hanifm/school-management/internal/core/events"
)

type RepositoryAPI interface {
	Create(fee *Fee) error
	GetByID(id int64) (*Fee, error)
	List(filter ListFeesFilter, limit, offset int) ([]*Fee, error)
	UpdateStatus(id int64, status string) error
	CreatePayment(payment *Payment) error
	ListPayments(feeID int64) ([]*Payment, error)
	SumPayments(feeID int64) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) CreateFee(dto CreateFeeDTO) (*Fee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	currency := dto.Currency
	if currency == "" {
		currency = "IDR"
	}

	fee := &Fee{
		StudentID: dto.StudentID,
		FeeType:   dto.FeeType,
		Amount:    dto.Amount,
		Currency:  currency,
		DueDate:   dto.DueDate,
		Status:    StatusUnpaid,
	}
	if err := s.repo.Create(fee); err != nil {
		s.logger.Error("failed to create fee", "error", err, "student_id", dto.StudentID)
		return nil, err
	}

	s.logger.Info("fee created", "fee_id", fee.ID, "student_id", fee.StudentID, "amount", fee.Amount)
	return fee, nil
}

func (s *Service) GetFee(id int64) (*Fee, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListFees(filter ListFeesFilter, limit, offset int) ([]*Fee, error) {
	return s.repo.List(filter, limit, offset)
}

// RecordPayment settles part or all of a fee. The fee moves to partial
// until payments cover the full amount, then to paid. Paying a settled
// fee is rejected.
func (s *Service) RecordPayment(ctx context.Context, feeID, recordedBy int64, dto RecordPaymentDTO) (*Payment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fee, err := s.repo.GetByID(feeID)
	if err != nil {
		return nil, err
	}
	if fee.Status == StatusPaid {
		return nil, ErrFeeAlreadyPaid
	}

	paid, err := s.repo.SumPayments(feeID)
	if err != nil {
		s.logger.Error("failed to sum payments", "error", err, "fee_id", feeID)
		return nil, err
	}

	payment := &Payment{
		FeeID:      feeID,
		Amount:     dto.Amount,
		Method:     dto.Method,
		Reference:  dto.Reference,
		ReceiptNo:  newReceiptNo(),
		RecordedBy: recordedBy,
		PaidAt:     time.Now(),
	}
	if err := s.repo.CreatePayment(payment); err != nil {
		s.logger.Error("failed to record payment", "error", err, "fee_id", feeID)
		return nil, err
	}

	outstanding := fee.Amount - paid
	status := StatusPartial
	if dto.Amount >= outstanding {
		status = StatusPaid
	}
	if err := s.repo.UpdateStatus(feeID, status); err != nil {
		s.logger.Error("failed to update fee status", "error", err, "fee_id", feeID)
		return nil, err
	}

	s.logger.Info("payment recorded",
		"fee_id", feeID,
		"payment_id", payment.ID,
		"amount", payment.Amount,
		"receipt_no", payment.ReceiptNo,
		"fee_status", status)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewFeePaymentRecordedEvent(feeID, fee.StudentID, payment.ID, payment.Amount, status))
	}

	return payment, nil
}

func (s *Service) ListPayments(feeID int64) ([]*Payment, error) {
	if _, err := s.repo.GetByID(feeID); err != nil {
		return nil, err
	}
	return s.repo.ListPayments(feeID)
}

func newReceiptNo() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("RCP-%s-%s", time.Now().Format("20060102"), raw[:8])
}
