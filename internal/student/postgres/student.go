package postgres

import (
	"strings"
	"time"

	"gorm.io/gorm"

	studentDatamodel "github.com/hanifm/school-management/internal/core/datamodel/student"
	"github.com/hanifm/school-management/internal/student"
)

// StudentRepository implements the student.RepositoryAPI interface using GORM
type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(row *studentDatamodel.Student) error {
	err := r.db.Create(row).Error
	if err != nil && isUniqueViolation(err) {
		return student.ErrDuplicateAdmission
	}
	return err
}

func (r *StudentRepository) GetByID(id int64) (*studentDatamodel.Student, error) {
	var row studentDatamodel.Student
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, student.ErrStudentNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *StudentRepository) GetByAdmissionNo(admissionNo string) (*studentDatamodel.Student, error) {
	var row studentDatamodel.Student
	err := r.db.Where("admission_no = ?", admissionNo).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, student.ErrStudentNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *StudentRepository) List(filter student.ListStudentsFilter, limit, offset int) ([]*studentDatamodel.Student, error) {
	var rows []*studentDatamodel.Student

	query := r.db.Model(&studentDatamodel.Student{})
	if filter.ClassroomID != nil {
		query = query.Where("classroom_id = ?", *filter.ClassroomID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	err := query.Order("admission_no ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *StudentRepository) Update(row *studentDatamodel.Student) error {
	row.UpdatedAt = time.Now()
	return r.db.Save(row).Error
}

func (r *StudentRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&studentDatamodel.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// StudentIDForUser resolves a login account to its student record, for
// handlers that scope reads and submissions to the caller.
func (r *StudentRepository) StudentIDForUser(userID int64) (int64, error) {
	var row studentDatamodel.Student
	err := r.db.Select("id").Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, student.ErrStudentNotFound
		}
		return 0, err
	}
	return row.ID, nil
}

// UserIDForStudent is the reverse lookup; nil when the student has no
// linked account.
func (r *StudentRepository) UserIDForStudent(studentID int64) (*int64, error) {
	var row studentDatamodel.Student
	err := r.db.Select("user_id").Where("id = ?", studentID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, student.ErrStudentNotFound
		}
		return nil, err
	}
	return row.UserID, nil
}

// isUniqueViolation matches both the Postgres error text and SQLite's,
// which backs the repository tests.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
