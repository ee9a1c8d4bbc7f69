package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hanifm/school-management/internal/crm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(lead *crm.Lead) error {
	return r.db.Create(lead).Error
}

func (r *Repository) GetByID(id int64) (*crm.Lead, error) {
	var lead crm.Lead
	if err := r.db.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, crm.ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

func (r *Repository) List(filter crm.ListLeadsFilter, limit, offset int) ([]*crm.Lead, error) {
	query := r.db.Model(&crm.Lead{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AssignedTo > 0 {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}

	var leads []*crm.Lead
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *Repository) Update(lead *crm.Lead) error {
	return r.db.Save(lead).Error
}
