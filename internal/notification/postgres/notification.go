package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/hanifm/school-management/internal/notification"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(n *notification.Notification) error {
	return r.db.Create(n).Error
}

func (r *Repository) CreateBatch(batch []*notification.Notification) error {
	if len(batch) == 0 {
		return nil
	}
	return r.db.CreateInBatches(batch, 500).Error
}

func (r *Repository) ListForUser(userID int64, unreadOnly bool, limit, offset int) ([]*notification.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var notifications []*notification.Notification
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *Repository) CountUnread(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) MarkRead(id, userID int64, at time.Time) error {
	result := r.db.Model(&notification.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (r *Repository) MarkAllRead(userID int64, at time.Time) (int64, error) {
	result := r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
