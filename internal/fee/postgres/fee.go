package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hanifm/school-management/internal/fee"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(f *fee.Fee) error {
	return r.db.Create(f).Error
}

func (r *Repository) GetByID(id int64) (*fee.Fee, error) {
	var f fee.Fee
	if err := r.db.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fee.ErrFeeNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *Repository) List(filter fee.ListFeesFilter, limit, offset int) ([]*fee.Fee, error) {
	query := r.db.Model(&fee.Fee{})
	if filter.StudentID > 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FeeType != "" {
		query = query.Where("fee_type = ?", filter.FeeType)
	}

	var fees []*fee.Fee
	err := query.
		Order("due_date ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&fees).Error
	if err != nil {
		return nil, err
	}
	return fees, nil
}

func (r *Repository) UpdateStatus(id int64, status string) error {
	result := r.db.Model(&fee.Fee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fee.ErrFeeNotFound
	}
	return nil
}

func (r *Repository) CreatePayment(p *fee.Payment) error {
	return r.db.Create(p).Error
}

func (r *Repository) ListPayments(feeID int64) ([]*fee.Payment, error) {
	var payments []*fee.Payment
	err := r.db.
		Where("fee_id = ?", feeID).
		Order("paid_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *Repository) SumPayments(feeID int64) (int64, error) {
	var total int64
	err := r.db.Model(&fee.Payment{}).
		Where("fee_id = ?", feeID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
