package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hanifm/school-management/internal/attendance"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert replaces any existing row for the same student and date, keeping
// the original primary key so the unique index is never violated.
func (r *Repository) Upsert(record *attendance.Record) error {
	existing, err := r.GetByStudentAndDate(record.StudentID, record.Date)
	if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return r.db.Save(record).Error
	}
	return r.db.Create(record).Error
}

func (r *Repository) GetByStudentAndDate(studentID int64, date time.Time) (*attendance.Record, error) {
	var record attendance.Record
	err := r.db.
		Where("student_id = ? AND date = ?", studentID, date).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *Repository) List(filter attendance.ListFilter, limit, offset int) ([]*attendance.Record, error) {
	query := r.db.Model(&attendance.Record{})
	if filter.StudentID > 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.ClassroomID > 0 {
		query = query.Where("classroom_id = ?", filter.ClassroomID)
	}
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", filter.To)
	}

	var records []*attendance.Record
	err := query.
		Order("date DESC, student_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
