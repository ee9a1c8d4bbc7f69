package grade

import (
	"log/slog"
	"time"

	"github.com/hanifm/school-management/internal/core/common/validation"
)

type RepositoryAPI interface {
	Create(g *Grade) error
	GetByID(id int64) (*Grade, error)
	List(filter ListGradesFilter, limit, offset int) ([]*Grade, error)
	Update(g *Grade) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) RecordGrade(recordedBy int64, dto CreateGradeDTO) (*Grade, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	maxScore := dto.MaxScore
	if maxScore == 0 {
		maxScore = 100
	}

	now := time.Now()
	g := &Grade{
		StudentID:      dto.StudentID,
		Subject:        dto.Subject,
		Term:           dto.Term,
		AssessmentType: dto.AssessmentType,
		Score:          dto.Score,
		MaxScore:       maxScore,
		Remarks:        dto.Remarks,
		RecordedBy:     recordedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(g); err != nil {
		s.logger.Error("failed to record grade", "error", err, "student_id", dto.StudentID)
		return nil, err
	}

	s.logger.Info("grade recorded", "grade_id", g.ID, "student_id", g.StudentID, "subject", g.Subject, "score", g.Score)
	return g, nil
}

func (s *Service) GetGrade(id int64) (*Grade, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListGrades(filter ListGradesFilter, limit, offset int) ([]*Grade, error) {
	grades, err := s.repo.List(filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list grades", "error", err)
		return nil, err
	}
	return grades, nil
}

func (s *Service) UpdateGrade(id int64, dto UpdateGradeDTO) (*Grade, error) {
	g, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Score != nil {
		if err := validation.ValidateScore(int64(*dto.Score), int64(g.MaxScore)); err != nil {
			return nil, err
		}
		g.Score = *dto.Score
	}
	if dto.Remarks != nil {
		g.Remarks = dto.Remarks
	}
	g.UpdatedAt = time.Now()

	if err := s.repo.Update(g); err != nil {
		s.logger.Error("failed to update grade", "error", err, "grade_id", id)
		return nil, err
	}
	return g, nil
}
