package crm

import (
	"context"
	"log/slog"
	"time"

	"github.com/hanifm/school-management/internal/core/events"
)

type RepositoryAPI interface {
	Create(lead *Lead) error
	GetByID(id int64) (*Lead, error)
	List(filter ListLeadsFilter, limit, offset int) ([]*Lead, error)
	Update(lead *Lead) error
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

func (s *Service) CreateLead(dto CreateLeadDTO) (*Lead, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	source := dto.Source
	if source == "" {
		source = "walk_in"
	}

	lead := &Lead{
		Name:   dto.Name,
		Email:  dto.Email,
		Phone:  dto.Phone,
		Source: source,
		Note:   dto.Note,
		Status: StatusNew,
	}
	if err := s.repo.Create(lead); err != nil {
		s.logger.Error("failed to create lead", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("lead created", "lead_id", lead.ID, "source", lead.Source)
	return lead, nil
}

func (s *Service) GetLead(id int64) (*Lead, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListLeads(filter ListLeadsFilter, limit, offset int) ([]*Lead, error) {
	return s.repo.List(filter, limit, offset)
}

func (s *Service) AssignLead(id, staffUserID int64) (*Lead, error) {
	lead, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead.Closed() {
		return nil, ErrLeadAlreadyClosed
	}

	lead.AssignedTo = &staffUserID
	lead.UpdatedAt = time.Now()
	if err := s.repo.Update(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// MoveLead advances a lead one step along the pipeline. Closed leads
// never move again, and conversion must go through ConvertLead so the
// student link is recorded.
func (s *Service) MoveLead(id int64, dto MoveLeadDTO) (*Lead, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.Status == StatusConverted {
		return nil, ErrInvalidTransition
	}

	lead, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead.Closed() {
		return nil, ErrLeadAlreadyClosed
	}
	if !CanTransition(lead.Status, dto.Status) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	lead.Status = dto.Status
	if dto.Note != nil {
		lead.Note = dto.Note
	}
	if lead.Closed() {
		lead.ClosedAt = &now
	}
	lead.UpdatedAt = now

	if err := s.repo.Update(lead); err != nil {
		s.logger.Error("failed to move lead", "error", err, "lead_id", id)
		return nil, err
	}

	s.logger.Info("lead moved", "lead_id", lead.ID, "status", lead.Status)
	return lead, nil
}

// ConvertLead closes a qualified lead against an admitted student and
// announces it on the bus.
func (s *Service) ConvertLead(ctx context.Context, id int64, dto ConvertLeadDTO) (*Lead, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	lead, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead.Closed() {
		return nil, ErrLeadAlreadyClosed
	}
	if !CanTransition(lead.Status, StatusConverted) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	lead.Status = StatusConverted
	lead.ConvertedStudentID = &dto.StudentID
	lead.ClosedAt = &now
	lead.UpdatedAt = now

	if err := s.repo.Update(lead); err != nil {
		s.logger.Error("failed to convert lead", "error", err, "lead_id", id)
		return nil, err
	}

	s.logger.Info("lead converted", "lead_id", lead.ID, "student_id", dto.StudentID)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewLeadConvertedEvent(lead.ID, dto.StudentID))
	}
	return lead, nil
}
