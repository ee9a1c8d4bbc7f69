package assignment

import (
	"errors"
	"time"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadySubmitted   = errors.New("assignment already submitted")
	ErrPastDueDate        = errors.New("assignment past its due date")
	ErrNotOwner           = errors.New("assignment belongs to another teacher")
	ErrScoreOutOfRange    = errors.New("score exceeds the assignment maximum")
)

// Assignment is a piece of work set for a classroom.
type Assignment struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	ClassroomID int64     `json:"classroom_id" gorm:"column:classroom_id;not null;index"`
	TeacherID   int64     `json:"teacher_id" gorm:"column:teacher_id;not null;index"`
	Subject     string    `json:"subject" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date" gorm:"column:due_date;not null"`
	MaxScore    int       `json:"max_score" gorm:"column:max_score;not null;default:100"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) IsPastDue(now time.Time) bool {
	return now.After(a.DueDate)
}

// Submission is one student's answer to an assignment. A student submits
// at most once per assignment.
type Submission struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	AssignmentID int64      `json:"assignment_id" gorm:"column:assignment_id;not null;uniqueIndex:idx_submission_once"`
	StudentID    int64      `json:"student_id" gorm:"column:student_id;not null;uniqueIndex:idx_submission_once"`
	Content      *string    `json:"content,omitempty"`
	SubmittedAt  time.Time  `json:"submitted_at" gorm:"column:submitted_at;not null"`
	Score        *int       `json:"score,omitempty"`
	Feedback     *string    `json:"feedback,omitempty"`
	GradedBy     *int64     `json:"graded_by,omitempty" gorm:"column:graded_by"`
	GradedAt     *time.Time `json:"graded_at,omitempty" gorm:"column:graded_at"`
}

func (Submission) TableName() string {
	return "assignment_submissions"
}

func (s *Submission) IsGraded() bool {
	return s.GradedAt != nil
}
