package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/hanifm/school-management/internal/classroom"
	studentDatamodel "github.com/hanifm/school-management/internal/core/datamodel/student"
)

type ClassroomRepository struct {
	db *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

func (r *ClassroomRepository) Create(room *classroom.Classroom) error {
	return r.db.Create(room).Error
}

func (r *ClassroomRepository) GetByID(id int64) (*classroom.Classroom, error) {
	var room classroom.Classroom
	err := r.db.Where("id = ?", id).First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, classroom.ErrClassroomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *ClassroomRepository) GetByNameSectionYear(name, section, academicYear string) (*classroom.Classroom, error) {
	var room classroom.Classroom
	err := r.db.Where("name = ? AND section = ? AND academic_year = ?", name, section, academicYear).
		First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, classroom.ErrClassroomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *ClassroomRepository) List(academicYear string, limit, offset int) ([]*classroom.Classroom, error) {
	var rooms []*classroom.Classroom

	query := r.db.Model(&classroom.Classroom{})
	if academicYear != "" {
		query = query.Where("academic_year = ?", academicYear)
	}

	err := query.Order("name ASC, section ASC").
		Limit(limit).
		Offset(offset).
		Find(&rooms).Error
	return rooms, err
}

func (r *ClassroomRepository) Update(room *classroom.Classroom) error {
	room.UpdatedAt = time.Now()
	return r.db.Save(room).Error
}

func (r *ClassroomRepository) Delete(id int64) error {
	return r.db.Delete(&classroom.Classroom{}, id).Error
}

func (r *ClassroomRepository) CountStudents(id int64) (int64, error) {
	var count int64
	err := r.db.Model(&studentDatamodel.Student{}).
		Where("classroom_id = ? AND status = ?", id, "active").
		Count(&count).Error
	return count, err
}
