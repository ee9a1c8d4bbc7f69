package cms

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrDuplicateSlug = errors.New("slug already in use")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Page is a static content page. Unpublished pages are only visible
// through the admin endpoints.
type Page struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Body        string     `json:"body" gorm:"not null"`
	Published   bool       `json:"published" gorm:"not null;default:false"`
	PublishedAt *time.Time `json:"published_at,omitempty" gorm:"column:published_at"`
	CreatedBy   int64      `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Page) TableName() string {
	return "cms_pages"
}

func ValidSlug(slug string) bool {
	return len(slug) <= 120 && slugPattern.MatchString(slug)
}
