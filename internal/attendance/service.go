package attendance

import (
	"log/slog"
	"time"
)

type RepositoryAPI interface {
	Upsert(record *Record) error
	GetByStudentAndDate(studentID int64, date time.Time) (*Record, error)
	List(filter ListFilter, limit, offset int) ([]*Record, error)
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

// MarkBulk writes one attendance row per entry, overwriting any existing
// row for the same student and date.
func (s *Service) MarkBulk(markedBy int64, dto BulkMarkDTO) ([]*Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	day := truncateToDay(dto.Date)
	now := time.Now()

	records := make([]*Record, 0, len(dto.Entries))
	for _, entry := range dto.Entries {
		record := &Record{
			StudentID:   entry.StudentID,
			ClassroomID: dto.ClassroomID,
			Date:        day,
			Status:      entry.Status,
			Note:        entry.Note,
			MarkedBy:    markedBy,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Upsert(record); err != nil {
			s.logger.Error("failed to mark attendance", "error", err, "student_id", entry.StudentID, "date", day)
			return nil, err
		}
		records = append(records, record)
	}

	s.logger.Info("attendance marked", "classroom_id", dto.ClassroomID, "date", day.Format("2006-01-02"), "count", len(records))
	return records, nil
}

func (s *Service) ListRecords(filter ListFilter, limit, offset int) ([]*Record, error) {
	records, err := s.repo.List(filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list attendance", "error", err)
		return nil, err
	}
	return records, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
