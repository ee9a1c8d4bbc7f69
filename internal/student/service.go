package student

import (
	"log/slog"
	"strings"
	"time"

	studentDatamodel "github.com/hanifm/school-management/internal/core/datamodel/student"
)

type RepositoryAPI interface {
	Create(student *studentDatamodel.Student) error
	GetByID(id int64) (*studentDatamodel.Student, error)
	GetByAdmissionNo(admissionNo string) (*studentDatamodel.Student, error)
	List(filter ListStudentsFilter, limit, offset int) ([]*studentDatamodel.Student, error)
	Update(student *studentDatamodel.Student) error
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

func (s *Service) AdmitStudent(dto CreateStudentDTO) (*Student, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("student validation failed", "error", err)
		return nil, err
	}

	if existing, err := s.repo.GetByAdmissionNo(dto.AdmissionNo); err == nil && existing != nil {
		return nil, ErrDuplicateAdmission
	}

	now := time.Now()
	admittedAt := now
	if dto.AdmittedAt != nil {
		admittedAt = *dto.AdmittedAt
	}

	row := &studentDatamodel.Student{
		AdmissionNo:   strings.TrimSpace(dto.AdmissionNo),
		FirstName:     dto.FirstName,
		LastName:      dto.LastName,
		DateOfBirth:   dto.DateOfBirth,
		Gender:        dto.Gender,
		ClassroomID:   dto.ClassroomID,
		GuardianName:  dto.GuardianName,
		GuardianPhone: dto.GuardianPhone,
		Phone:         dto.Phone,
		Address:       dto.Address,
		Status:        StatusActive,
		AdmittedAt:    admittedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create student", "error", err, "admission_no", dto.AdmissionNo)
		return nil, err
	}

	s.logger.Info("student admitted", "student_id", row.ID, "admission_no", row.AdmissionNo)
	return FromDataModel(row), nil
}

func (s *Service) GetStudent(id int64) (*Student, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) ListStudents(filter ListStudentsFilter, limit, offset int) ([]*Student, error) {
	rows, err := s.repo.List(filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list students", "error", err)
		return nil, err
	}

	students := make([]*Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, FromDataModel(row))
	}
	return students, nil
}

func (s *Service) UpdateStudent(id int64, dto UpdateStudentDTO) (*Student, error) {
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
	if dto.DateOfBirth != nil {
		row.DateOfBirth = dto.DateOfBirth
	}
	if dto.Gender != nil {
		row.Gender = dto.Gender
	}
	if dto.ClassroomID != nil {
		row.ClassroomID = dto.ClassroomID
	}
	if dto.GuardianName != nil {
		row.GuardianName = dto.GuardianName
	}
	if dto.GuardianPhone != nil {
		row.GuardianPhone = dto.GuardianPhone
	}
	if dto.Phone != nil {
		row.Phone = dto.Phone
	}
	if dto.Address != nil {
		row.Address = dto.Address
	}
	if dto.Status != nil {
		row.Status = *dto.Status
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update student", "error", err, "student_id", id)
		return nil, err
	}

	return FromDataModel(row), nil
}

// Withdraw marks the student transferred. Rows are never hard-deleted;
// historical grades and attendance keep pointing at them.
func (s *Service) Withdraw(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(id, StatusTransferred); err != nil {
		s.logger.Error("failed to withdraw student", "error", err, "student_id", id)
		return err
	}
	s.logger.Info("student withdrawn", "student_id", id)
	return nil
}
