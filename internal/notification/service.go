package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hanifm/school-management/internal/core/events"
)

type RepositoryAPI interface {
	Create(n *Notification) error
	CreateBatch(batch []*Notification) error
	ListForUser(userID int64, unreadOnly bool, limit, offset int) ([]*Notification, error)
	CountUnread(userID int64) (int64, error)
	MarkRead(id, userID int64, at time.Time) error
	MarkAllRead(userID int64, at time.Time) (int64, error)
}

// UserDirectory resolves broadcast audiences. An empty role means every
// active user.
type UserDirectory interface {
	ListActiveUserIDs(role string) ([]int64, error)
}

// StudentLookup maps a student record to its login account, when one
// is linked.
type StudentLookup interface {
	UserIDForStudent(studentID int64) (*int64, error)
}

type Service struct {
	repo     RepositoryAPI
	users    UserDirectory
	students StudentLookup
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, users UserDirectory, students StudentLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		students: students,
		logger:   logger,
	}
}

func (s *Service) ListForUser(userID int64, unreadOnly bool, limit, offset int) ([]*Notification, error) {
	return s.repo.ListForUser(userID, unreadOnly, limit, offset)
}

func (s *Service) CountUnread(userID int64) (int64, error) {
	return s.repo.CountUnread(userID)
}

// MarkRead only touches the caller's own rows; a foreign id reads as
// not found.
func (s *Service) MarkRead(id, userID int64) error {
	return s.repo.MarkRead(id, userID, time.Now())
}

func (s *Service) MarkAllRead(userID int64) (int64, error) {
	return s.repo.MarkAllRead(userID, time.Now())
}

func (s *Service) Notify(userID int64, title, body, kind string) (*Notification, error) {
	n := &Notification{
		UserID:    userID,
		Title:     title,
		Body:      body,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(n); err != nil {
		s.logger.Error("failed to create notification", "error", err, "user_id", userID)
		return nil, err
	}
	return n, nil
}

// Broadcast fans one notice out to every active user, or to one role
// when dto.Role is set.
func (s *Service) Broadcast(dto BroadcastDTO) (int, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	userIDs, err := s.users.ListActiveUserIDs(dto.Role)
	if err != nil {
		s.logger.Error("failed to resolve broadcast audience", "error", err, "role", dto.Role)
		return 0, err
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	now := time.Now()
	batch := make([]*Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		batch = append(batch, &Notification{
			UserID:    userID,
			Title:     dto.Title,
			Body:      dto.Body,
			Kind:      "broadcast",
			CreatedAt: now,
		})
	}
	if err := s.repo.CreateBatch(batch); err != nil {
		s.logger.Error("failed to store broadcast", "error", err)
		return 0, err
	}

	s.logger.Info("broadcast sent", "recipients", len(batch), "role", dto.Role)
	return len(batch), nil
}

// RegisterEventHandlers wires the service onto the bus so that domain
// events become notification rows.
func (s *Service) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeFeePaymentRecorded, s.handleFeePaymentRecorded)
	bus.Subscribe(events.EventTypeLeadConverted, s.handleLeadConverted)
}

func (s *Service) handleFeePaymentRecorded(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.FeePaymentRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	userID, err := s.students.UserIDForStudent(e.StudentID)
	if err != nil {
		return fmt.Errorf("resolve student %d: %w", e.StudentID, err)
	}
	if userID == nil {
		s.logger.Debug("payment recorded for student without a linked account", "student_id", e.StudentID)
		return nil
	}

	body := fmt.Sprintf("A payment of %d was recorded against fee #%d. The fee is now %s.", e.Amount, e.FeeID, e.FeeStatus)
	_, err = s.Notify(*userID, "Payment received", body, "fee")
	return err
}

func (s *Service) handleLeadConverted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.LeadConvertedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	staffIDs, err := s.users.ListActiveUserIDs("staff")
	if err != nil {
		return fmt.Errorf("resolve staff audience: %w", err)
	}
	if len(staffIDs) == 0 {
		return nil
	}

	now := time.Now()
	body := fmt.Sprintf("Lead #%d was converted and admitted as student #%d.", e.LeadID, e.StudentID)
	batch := make([]*Notification, 0, len(staffIDs))
	for _, userID := range staffIDs {
		batch = append(batch, &Notification{
			UserID:    userID,
			Title:     "Lead converted",
			Body:      body,
			Kind:      "crm",
			CreatedAt: now,
		})
	}
	return s.repo.CreateBatch(batch)
}
