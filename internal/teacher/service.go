package teacher

import (
	"log/slog"
	"time"

	teacherDatamodel "github.com/hanifm/school-management/internal/core/datamodel/teacher"
)

type RepositoryAPI interface {
	Create(row *teacherDatamodel.Teacher) error
	GetByID(id int64) (*teacherDatamodel.Teacher, error)
	GetByEmployeeNo(employeeNo string) (*teacherDatamodel.Teacher, error)
	List(status string, limit, offset int) ([]*teacherDatamodel.Teacher, error)
	Update(row *teacherDatamodel.Teacher) error
	UpdateStatus(id int64, status string) error
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

func (s *Service) HireTeacher(dto CreateTeacherDTO) (*Teacher, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmployeeNo(dto.EmployeeNo); err == nil && existing != nil {
		return nil, ErrDuplicateEmployeeNo
	}

	now := time.Now()
	row := &teacherDatamodel.Teacher{
		EmployeeNo:    dto.EmployeeNo,
		FirstName:     dto.FirstName,
		LastName:      dto.LastName,
		Email:         dto.Email,
		Phone:         dto.Phone,
		Qualification: dto.Qualification,
		Subjects:      dto.Subjects,
		HiredAt:       dto.HiredAt,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create teacher", "error", err, "employee_no", dto.EmployeeNo)
		return nil, err
	}

	s.logger.Info("teacher hired", "teacher_id", row.ID, "employee_no", row.EmployeeNo)
	return FromDataModel(row), nil
}

func (s *Service) GetTeacher(id int64) (*Teacher, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) ListTeachers(status string, limit, offset int) ([]*Teacher, error) {
	rows, err := s.repo.List(status, limit, offset)
	if err != nil {
		s.logger.Error("failed to list teachers", "error", err)
		return nil, err
	}

	teachers := make([]*Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, FromDataModel(row))
	}
	return teachers, nil
}

func (s *Service) UpdateTeacher(id int64, dto UpdateTeacherDTO) (*Teacher, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.FirstName != nil {
		row.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		row.LastName = *dto.LastName
	}
	if dto.Email != nil {
		row.Email = dto.Email
	}
	if dto.Phone != nil {
		row.Phone = dto.Phone
	}
	if dto.Qualification != nil {
		row.Qualification = dto.Qualification
	}
	if dto.Subjects != nil {
		row.Subjects = dto.Subjects
	}
	if dto.HiredAt != nil {
		row.HiredAt = dto.HiredAt
	}
	if dto.Status != nil {
		row.Status = *dto.Status
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update teacher", "error", err, "teacher_id", id)
		return nil, err
	}

	return FromDataModel(row), nil
}

func (s *Service) Deactivate(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(id, StatusResigned); err != nil {
		s.logger.Error("failed to deactivate teacher", "error", err, "teacher_id", id)
		return err
	}
	s.logger.Info("teacher deactivated", "teacher_id", id)
	return nil
}
