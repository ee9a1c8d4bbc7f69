package crm

import (
	"errors"
	"time"
)

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrLeadAlreadyClosed = errors.New("lead is already closed")
	ErrInvalidTransition = errors.New("invalid lead status transition")
)

// transitions is the forward-only pipeline. Converted and lost are
// terminal.
var transitions = map[string][]string{
	StatusNew:       {StatusContacted, StatusLost},
	StatusContacted: {StatusQualified, StatusLost},
	StatusQualified: {StatusConverted, StatusLost},
	StatusConverted: {},
	StatusLost:      {},
}

type Lead struct {
	ID                 int64      `json:"id" gorm:"primaryKey"`
	Name               string     `json:"name" gorm:"not null"`
	Email              *string    `json:"email,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	Source             string     `json:"source" gorm:"not null;default:'walk_in'"`
	Note               *string    `json:"note,omitempty"`
	Status             string     `json:"status" gorm:"not null;default:'new'"`
	AssignedTo         *int64     `json:"assigned_to,omitempty" gorm:"column:assigned_to"`
	ConvertedStudentID *int64     `json:"converted_student_id,omitempty" gorm:"column:converted_student_id"`
	ClosedAt           *time.Time `json:"closed_at,omitempty" gorm:"column:closed_at"`
	CreatedAt          time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Lead) TableName() string {
	return "crm_leads"
}

func (l *Lead) Closed() bool {
	return l.Status == StatusConverted || l.Status == StatusLost
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}
