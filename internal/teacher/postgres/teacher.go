package postgres

import (
	"strings"
	"time"

	"gorm.io/gorm"

	teacherDatamodel "github.com/hanifm/school-management/internal/core/datamodel/teacher"
	"github.com/hanifm/school-management/internal/teacher"
)

type TeacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

func (r *TeacherRepository) Create(row *teacherDatamodel.Teacher) error {
	err := r.db.Create(row).Error
	if err != nil && isUniqueViolation(err) {
		return teacher.ErrDuplicateEmployeeNo
	}
	return err
}

func (r *TeacherRepository) GetByID(id int64) (*teacherDatamodel.Teacher, error) {
	var row teacherDatamodel.Teacher
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, teacher.ErrTeacherNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *TeacherRepository) GetByEmployeeNo(employeeNo string) (*teacherDatamodel.Teacher, error) {
	var row teacherDatamodel.Teacher
	err := r.db.Where("employee_no = ?", employeeNo).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, teacher.ErrTeacherNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *TeacherRepository) List(status string, limit, offset int) ([]*teacherDatamodel.Teacher, error) {
	var rows []*teacherDatamodel.Teacher

	query := r.db.Model(&teacherDatamodel.Teacher{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Order("employee_no ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *TeacherRepository) Update(row *teacherDatamodel.Teacher) error {
	row.UpdatedAt = time.Now()
	return r.db.Save(row).Error
}

func (r *TeacherRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&teacherDatamodel.Teacher{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// TeacherIDForUser resolves a login account to its teacher record, for
// handlers that attribute work to the calling teacher.
func (r *TeacherRepository) TeacherIDForUser(userID int64) (int64, error) {
	var row teacherDatamodel.Teacher
	err := r.db.Select("id").Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, teacher.ErrTeacherNotFound
		}
		return 0, err
	}
	return row.ID, nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
