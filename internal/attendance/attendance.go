package attendance

import (
	"errors"
	"time"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

var (
	ErrRecordNotFound = errors.New("attendance record not found")
)

// Record is one student's attendance for one calendar day. The
// (student_id, date) pair is unique; marking twice overwrites.
type Record struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	StudentID   int64     `json:"student_id" gorm:"column:student_id;not null;uniqueIndex:idx_attendance_day"`
	ClassroomID int64     `json:"classroom_id" gorm:"column:classroom_id;not null;index"`
	Date        time.Time `json:"date" gorm:"column:date;type:date;not null;uniqueIndex:idx_attendance_day"`
	Status      string    `json:"status" gorm:"not null"`
	Note        *string   `json:"note,omitempty"`
	MarkedBy    int64     `json:"marked_by" gorm:"column:marked_by;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Record) TableName() string {
	return "attendance_records"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}
