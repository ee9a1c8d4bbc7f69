package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/hanifm/school-management/internal/grade"
)

type GradeRepository struct {
	db *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

func (r *GradeRepository) Create(g *grade.Grade) error {
	return r.db.Create(g).Error
}

func (r *GradeRepository) GetByID(id int64) (*grade.Grade, error) {
	var g grade.Grade
	err := r.db.Where("id = ?", id).First(&g).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, grade.ErrGradeNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GradeRepository) List(filter grade.ListGradesFilter, limit, offset int) ([]*grade.Grade, error) {
	var rows []*grade.Grade

	query := r.db.Model(&grade.Grade{})
	if filter.StudentID > 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Term != "" {
		query = query.Where("term = ?", filter.Term)
	}

	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *GradeRepository) Update(g *grade.Grade) error {
	g.UpdatedAt = time.Now()
	return r.db.Save(g).Error
}

func (r *GradeRepository) Delete(id int64) error {
	return r.db.Delete(&grade.Grade{}, id).Error
}
