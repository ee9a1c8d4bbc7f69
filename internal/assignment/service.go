package assignment

import (
	"log/slog"
	"time"
)

type RepositoryAPI interface {
	Create(a *Assignment) error
	GetByID(id int64) (*Assignment, error)
	ListByClassroom(classroomID int64, limit, offset int) ([]*Assignment, error)
	ListByTeacher(teacherID int64, limit, offset int) ([]*Assignment, error)
	Update(a *Assignment) error
	Delete(id int64) error

	CreateSubmission(sub *Submission) error
	GetSubmission(assignmentID, studentID int64) (*Submission, error)
	GetSubmissionByID(id int64) (*Submission, error)
	ListSubmissions(assignmentID int64, limit, offset int) ([]*Submission, error)
	UpdateSubmission(sub *Submission) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateAssignment(teacherID int64, dto CreateAssignmentDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	a := &Assignment{
		ClassroomID: dto.ClassroomID,
		TeacherID:   teacherID,
		Subject:     dto.Subject,
		Title:       dto.Title,
		Description: dto.Description,
		DueDate:     dto.DueDate,
		MaxScore:    dto.MaxScore,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create assignment", "error", err, "teacher_id", teacherID)
		return nil, err
	}

	s.logger.Info("assignment created", "assignment_id", a.ID, "classroom_id", a.ClassroomID, "title", a.Title)
	return a, nil
}

func (s *Service) GetAssignment(id int64) (*Assignment, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListAssignments(classroomID, teacherID int64, limit, offset int) ([]*Assignment, error) {
	if classroomID > 0 {
		return s.repo.ListByClassroom(classroomID, limit, offset)
	}
	if teacherID > 0 {
		return s.repo.ListByTeacher(teacherID, limit, offset)
	}
	return s.repo.ListByClassroom(0, limit, offset)
}

// UpdateAssignment applies partial updates. Only the owning teacher may
// change an assignment; isAdmin bypasses the ownership check.
func (s *Service) UpdateAssignment(id, callerTeacherID int64, isAdmin bool, dto UpdateAssignmentDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && a.TeacherID != callerTeacherID {
		return nil, ErrNotOwner
	}

	if dto.Subject != nil {
		a.Subject = *dto.Subject
	}
	if dto.Title != nil {
		a.Title = *dto.Title
	}
	if dto.Description != nil {
		a.Description = dto.Description
	}
	if dto.DueDate != nil {
		a.DueDate = *dto.DueDate
	}
	if dto.MaxScore != nil {
		a.MaxScore = *dto.MaxScore
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update assignment", "error", err, "assignment_id", id)
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAssignment(id, callerTeacherID int64, isAdmin bool) error {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !isAdmin && a.TeacherID != callerTeacherID {
		return ErrNotOwner
	}
	return s.repo.Delete(id)
}

// Submit records a student's answer. One submission per student per
// assignment; late submissions are rejected.
func (s *Service) Submit(assignmentID, studentID int64, dto SubmitAssignmentDTO) (*Submission, error) {
	a, err := s.repo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if a.IsPastDue(now) {
		return nil, ErrPastDueDate
	}

	if existing, err := s.repo.GetSubmission(assignmentID, studentID); err == nil && existing != nil {
		return nil, ErrAlreadySubmitted
	}

	sub := &Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      dto.Content,
		SubmittedAt:  now,
	}

	if err := s.repo.CreateSubmission(sub); err != nil {
		s.logger.Error("failed to create submission", "error", err, "assignment_id", assignmentID, "student_id", studentID)
		return nil, err
	}

	s.logger.Info("assignment submitted", "assignment_id", assignmentID, "student_id", studentID)
	return sub, nil
}

func (s *Service) ListSubmissions(assignmentID int64, limit, offset int) ([]*Submission, error) {
	if _, err := s.repo.GetByID(assignmentID); err != nil {
		return nil, err
	}
	return s.repo.ListSubmissions(assignmentID, limit, offset)
}

// GradeSubmission scores one submission, clamping at the assignment's
// max score.
func (s *Service) GradeSubmission(submissionID, graderUserID int64, dto GradeSubmissionDTO) (*Submission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.repo.GetSubmissionByID(submissionID)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(sub.AssignmentID)
	if err != nil {
		return nil, err
	}
	if dto.Score > a.MaxScore {
		return nil, ErrScoreOutOfRange
	}

	now := time.Now()
	score := dto.Score
	sub.Score = &score
	sub.Feedback = dto.Feedback
	sub.GradedBy = &graderUserID
	sub.GradedAt = &now

	if err := s.repo.UpdateSubmission(sub); err != nil {
		s.logger.Error("failed to grade submission", "error", err, "submission_id", submissionID)
		return nil, err
	}

	s.logger.Info("submission graded", "submission_id", submissionID, "score", score, "max_score", a.MaxScore)
	return sub, nil
}
