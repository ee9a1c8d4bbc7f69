package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hanifm/school-management/internal/cms"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(page *cms.Page) error {
	if err := r.db.Create(page).Error; err != nil {
		if isUniqueViolation(err) {
			return cms.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(id int64) (*cms.Page, error) {
	var page cms.Page
	if err := r.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cms.ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

func (r *Repository) GetBySlug(slug string) (*cms.Page, error) {
	var page cms.Page
	if err := r.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cms.ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

func (r *Repository) List(publishedOnly bool, limit, offset int) ([]*cms.Page, error) {
	query := r.db.Model(&cms.Page{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var pages []*cms.Page
	err := query.
		Order("slug ASC").
		Limit(limit).
		Offset(offset).
		Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *Repository) Update(page *cms.Page) error {
	return r.db.Save(page).Error
}

func (r *Repository) Delete(id int64) error {
	result := r.db.Delete(&cms.Page{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return cms.ErrPageNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
