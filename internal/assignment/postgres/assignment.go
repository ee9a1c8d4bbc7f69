package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/hanifm/school-management/internal/assignment"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(a *assignment.Assignment) error {
	return r.db.Create(a).Error
}

func (r *AssignmentRepository) GetByID(id int64) (*assignment.Assignment, error) {
	var a assignment.Assignment
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, assignment.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) ListByClassroom(classroomID int64, limit, offset int) ([]*assignment.Assignment, error) {
	var rows []*assignment.Assignment

	query := r.db.Model(&assignment.Assignment{})
	if classroomID > 0 {
		query = query.Where("classroom_id = ?", classroomID)
	}

	err := query.Order("due_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) ListByTeacher(teacherID int64, limit, offset int) ([]*assignment.Assignment, error) {
	var rows []*assignment.Assignment
	err := r.db.Where("teacher_id = ?", teacherID).
		Order("due_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) Update(a *assignment.Assignment) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(a).Error
}

func (r *AssignmentRepository) Delete(id int64) error {
	return r.db.Delete(&assignment.Assignment{}, id).Error
}

func (r *AssignmentRepository) CreateSubmission(sub *assignment.Submission) error {
	return r.db.Create(sub).Error
}

func (r *AssignmentRepository) GetSubmission(assignmentID, studentID int64) (*assignment.Submission, error) {
	var sub assignment.Submission
	err := r.db.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, assignment.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *AssignmentRepository) GetSubmissionByID(id int64) (*assignment.Submission, error) {
	var sub assignment.Submission
	err := r.db.Where("id = ?", id).First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, assignment.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *AssignmentRepository) ListSubmissions(assignmentID int64, limit, offset int) ([]*assignment.Submission, error) {
	var rows []*assignment.Submission
	err := r.db.Where("assignment_id = ?", assignmentID).
		Order("submitted_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) UpdateSubmission(sub *assignment.Submission) error {
	return r.db.Save(sub).Error
}
