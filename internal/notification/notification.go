package notification

import (
	"errors"
	"time"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Notification is a row, not a delivery. Readers poll their own list;
// nothing here sends email or SMS.
type Notification struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	UserID    int64      `json:"user_id" gorm:"column:user_id;not null;index"`
	Title     string     `json:"title" gorm:"not null"`
	Body      string     `json:"body" gorm:"not null"`
	Kind      string     `json:"kind" gorm:"not null;default:'general'"`
	ReadAt    *time.Time `json:"read_at,omitempty" gorm:"column:read_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
