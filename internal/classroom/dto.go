package classroom

import "github.com/hanifm/school-management/internal"

type CreateClassroomDTO struct {
	Name         string `json:"name"`
	Section      string `json:"section"`
	AcademicYear string `json:"academic_year"`
	Capacity     int    `json:"capacity"`
}

func (dto CreateClassroomDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Section == "" {
		return internal.NewValidationFieldError("section", "section is required", internal.ErrCodeValidationFailed)
	}
	if dto.AcademicYear == "" {
		return internal.NewValidationFieldError("academic_year", "academic_year is required", internal.ErrCodeValidationFailed)
	}
	if dto.Capacity < 0 || dto.Capacity > 200 {
		return internal.NewValidationFieldError("capacity", "capacity must be between 0 and 200", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateClassroomDTO struct {
	Name         *string `json:"name,omitempty"`
	Section      *string `json:"section,omitempty"`
	AcademicYear *string `json:"academic_year,omitempty"`
	Capacity     *int    `json:"capacity,omitempty"`
}

func (dto UpdateClassroomDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Capacity != nil && (*dto.Capacity < 0 || *dto.Capacity > 200) {
		return internal.NewValidationFieldError("capacity", "capacity must be between 0 and 200", internal.ErrCodeValidationFailed)
	}
	return nil
}

type AssignTeacherDTO struct {
	TeacherID int64 `json:"teacher_id"`
}

func (dto AssignTeacherDTO) Validate() error {
	if dto.TeacherID <= 0 {
		return internal.NewValidationFieldError("teacher_id", "teacher_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
