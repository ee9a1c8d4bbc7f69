package grade

import (
	"errors"
	"time"
)

const (
	AssessmentExam       = "exam"
	AssessmentQuiz       = "quiz"
	AssessmentAssignment = "assignment"
	AssessmentProject    = "project"
)

var (
	ErrGradeNotFound = errors.New("grade not found")
)

// Grade is one score record for a student in a subject for a term.
type Grade struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	StudentID      int64     `json:"student_id" gorm:"column:student_id;not null;index"`
	Subject        string    `json:"subject" gorm:"not null"`
	Term           string    `json:"term" gorm:"not null"`
	AssessmentType string    `json:"assessment_type" gorm:"column:assessment_type;not null"`
	Score          int       `json:"score" gorm:"not null"`
	MaxScore       int       `json:"max_score" gorm:"column:max_score;not null;default:100"`
	Remarks        *string   `json:"remarks,omitempty"`
	RecordedBy     int64     `json:"recorded_by" gorm:"column:recorded_by;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Grade) TableName() string {
	return "grades"
}

// Percentage returns the score as a fraction of the maximum, 0..100.
func (g *Grade) Percentage() float64 {
	if g.MaxScore == 0 {
		return 0
	}
	return float64(g.Score) / float64(g.MaxScore) * 100
}
