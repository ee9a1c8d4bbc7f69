package grade

import (
	"github.com/hanifm/school-management/internal/core/common/validation"
)

type CreateGradeDTO struct {
	StudentID      int64   `json:"student_id"`
	Subject        string  `json:"subject"`
	Term           string  `json:"term"`
	AssessmentType string  `json:"assessment_type"`
	Score          int     `json:"score"`
	MaxScore       int     `json:"max_score"`
	Remarks        *string `json:"remarks,omitempty"`
}

func (dto CreateGradeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("student_id", dto.StudentID).Required()
	v.Field("subject", dto.Subject).Required().MaxLength(100)
	v.Field("term", dto.Term).Required().MaxLength(50)
	v.Field("assessment_type", dto.AssessmentType).Required().
		OneOf(AssessmentExam, AssessmentQuiz, AssessmentAssignment, AssessmentProject)
	if err := v.Validate(); err != nil {
		return err
	}

	maxScore := int64(dto.MaxScore)
	if maxScore == 0 {
		maxScore = 100
	}
	if err := validation.ValidateScore(int64(dto.Score), maxScore); err != nil {
		return err
	}
	return nil
}

type UpdateGradeDTO struct {
	Score   *int    `json:"score,omitempty"`
	Remarks *string `json:"remarks,omitempty"`
}

type ListGradesFilter struct {
	StudentID int64
	Subject   string
	Term      string
}
