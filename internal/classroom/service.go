package classroom

import (
	"log/slog"
	"time"
)

type RepositoryAPI interface {
	Create(room *Classroom) error
	GetByID(id int64) (*Classroom, error)
	GetByNameSectionYear(name, section, academicYear string) (*Classroom, error)
	List(academicYear string, limit, offset int) ([]*Classroom, error)
	Update(room *Classroom) error
	Delete(id int64) error
	CountStudents(id int64) (int64, error)
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

func (s *Service) CreateClassroom(dto CreateClassroomDTO) (*Classroom, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByNameSectionYear(dto.Name, dto.Section, dto.AcademicYear); err == nil && existing != nil {
		return nil, ErrDuplicateName
	}

	capacity := dto.Capacity
	if capacity == 0 {
		capacity = 30
	}

	now := time.Now()
	room := &Classroom{
		Name:         dto.Name,
		Section:      dto.Section,
		AcademicYear: dto.AcademicYear,
		Capacity:     capacity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(room); err != nil {
		s.logger.Error("failed to create classroom", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("classroom created", "classroom_id", room.ID, "name", room.Name, "section", room.Section)
	return room, nil
}

func (s *Service) GetClassroom(id int64) (*Classroom, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListClassrooms(academicYear string, limit, offset int) ([]*Classroom, error) {
	rooms, err := s.repo.List(academicYear, limit, offset)
	if err != nil {
		s.logger.Error("failed to list classrooms", "error", err)
		return nil, err
	}
	return rooms, nil
}

func (s *Service) UpdateClassroom(id int64, dto UpdateClassroomDTO) (*Classroom, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	room, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		room.Name = *dto.Name
	}
	if dto.Section != nil {
		room.Section = *dto.Section
	}
	if dto.AcademicYear != nil {
		room.AcademicYear = *dto.AcademicYear
	}
	if dto.Capacity != nil {
		// Shrinking below current enrollment is rejected.
		count, err := s.repo.CountStudents(id)
		if err != nil {
			return nil, err
		}
		if int64(*dto.Capacity) < count {
			return nil, ErrCapacityExceeded
		}
		room.Capacity = *dto.Capacity
	}
	room.UpdatedAt = time.Now()

	if err := s.repo.Update(room); err != nil {
		s.logger.Error("failed to update classroom", "error", err, "classroom_id", id)
		return nil, err
	}

	return room, nil
}

func (s *Service) AssignHomeroomTeacher(id int64, dto AssignTeacherDTO) (*Classroom, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	room, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	room.AssignHomeroomTeacher(dto.TeacherID)
	if err := s.repo.Update(room); err != nil {
		s.logger.Error("failed to assign homeroom teacher", "error", err, "classroom_id", id, "teacher_id", dto.TeacherID)
		return nil, err
	}

	s.logger.Info("homeroom teacher assigned", "classroom_id", id, "teacher_id", dto.TeacherID)
	return room, nil
}

func (s *Service) DeleteClassroom(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	count, err := s.repo.CountStudents(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrClassroomNotEmpty
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete classroom", "error", err, "classroom_id", id)
		return err
	}
	return nil
}
