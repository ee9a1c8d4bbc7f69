package assignment

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestAssignment(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Assignment Module Suite")
}

type mockAssignmentRepository struct {
	assignments map[int64]*Assignment
	submissions map[int64]*Submission
	nextID      int64
}

func newMockAssignmentRepository() *mockAssignmentRepository {
	return &mockAssignmentRepository{
		assignments: make(map[int64]*Assignment),
		submissions: make(map[int64]*Submission),
		nextID:      1,
	}
}

func (m *mockAssignmentRepository) Create(a *Assignment) error {
	a.ID = m.nextID
	m.nextID++
	copied := *a
	m.assignments[a.ID] = &copied
	return nil
}

func (m *mockAssignmentRepository) GetByID(id int64) (*Assignment, error) {
	a, ok := m.assignments[id]
	if !ok {
		return nil, ErrAssignmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockAssignmentRepository) ListByClassroom(classroomID int64, limit, offset int) ([]*Assignment, error) {
	var out []*Assignment
	for _, a := range m.assignments {
		if classroomID != 0 && a.ClassroomID != classroomID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAssignmentRepository) ListByTeacher(teacherID int64, limit, offset int) ([]*Assignment, error) {
	var out []*Assignment
	for _, a := range m.assignments {
		if a.TeacherID == teacherID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepository) Update(a *Assignment) error {
	if _, ok := m.assignments[a.ID]; !ok {
		return ErrAssignmentNotFound
	}
	copied := *a
	m.assignments[a.ID] = &copied
	return nil
}

func (m *mockAssignmentRepository) Delete(id int64) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockAssignmentRepository) CreateSubmission(sub *Submission) error {
	sub.ID = m.nextID
	m.nextID++
	copied := *sub
	m.submissions[sub.ID] = &copied
	return nil
}

func (m *mockAssignmentRepository) GetSubmission(assignmentID, studentID int64) (*Submission, error) {
	for _, sub := range m.submissions {
		if sub.AssignmentID == assignmentID && sub.StudentID == studentID {
			copied := *sub
			return &copied, nil
		}
	}
	return nil, ErrSubmissionNotFound
}

func (m *mockAssignmentRepository) GetSubmissionByID(id int64) (*Submission, error) {
	sub, ok := m.submissions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	copied := *sub
	return &copied, nil
}

func (m *mockAssignmentRepository) ListSubmissions(assignmentID int64, limit, offset int) ([]*Submission, error) {
	var out []*Submission
	for _, sub := range m.submissions {
		if sub.AssignmentID == assignmentID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepository) UpdateSubmission(sub *Submission) error {
	if _, ok := m.submissions[sub.ID]; !ok {
		return ErrSubmissionNotFound
	}
	copied := *sub
	m.submissions[sub.ID] = &copied
	return nil
}

type mockTeacherResolver struct {
	byUser map[int64]int64
}

func (m *mockTeacherResolver) TeacherIDForUser(userID int64) (int64, error) {
	id, ok := m.byUser[userID]
	if !ok {
		return 0, fmt.Errorf("teacher not found")
	}
	return id, nil
}

type mockStudentResolver struct {
	byUser map[int64]int64
}

func (m *mockStudentResolver) StudentIDForUser(userID int64) (int64, error) {
	id, ok := m.byUser[userID]
	if !ok {
		return 0, fmt.Errorf("student not found")
	}
	return id, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = ginkgo.Describe("AssignmentService", func() {
	var (
		repo    *mockAssignmentRepository
		service *Service
	)

	nextWeek := time.Now().AddDate(0, 0, 7)

	createAssignment := func(teacherID int64) *Assignment {
		a, err := service.CreateAssignment(teacherID, CreateAssignmentDTO{
			ClassroomID: 1,
			Subject:     "Mathematics",
			Title:       "Chapter 3 exercises",
			DueDate:     nextWeek,
			MaxScore:    100,
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		return a
	}

	ginkgo.BeforeEach(func() {
		repo = newMockAssignmentRepository()
		service = NewService(repo, testLogger())
	})

	ginkgo.Describe("CreateAssignment", func() {
		ginkgo.It("should attribute the assignment to the given teacher", func() {
			a := createAssignment(7)
			gomega.Expect(a.TeacherID).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("should reject a max score outside range", func() {
			_, err := service.CreateAssignment(7, CreateAssignmentDTO{
				ClassroomID: 1,
				Subject:     "Mathematics",
				Title:       "Broken",
				DueDate:     nextWeek,
				MaxScore:    0,
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("UpdateAssignment", func() {
		ginkgo.It("should refuse changes from another teacher", func() {
			a := createAssignment(7)

			title := "Hijacked"
			_, err := service.UpdateAssignment(a.ID, 8, false, UpdateAssignmentDTO{Title: &title})
			gomega.Expect(err).To(gomega.MatchError(ErrNotOwner))
		})

		ginkgo.It("should let an admin change any assignment", func() {
			a := createAssignment(7)

			title := "Corrected title"
			updated, err := service.UpdateAssignment(a.ID, 0, true, UpdateAssignmentDTO{Title: &title})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.Title).To(gomega.Equal("Corrected title"))
		})
	})

	ginkgo.Describe("DeleteAssignment", func() {
		ginkgo.It("should refuse deletion from another teacher", func() {
			a := createAssignment(7)

			err := service.DeleteAssignment(a.ID, 8, false)
			gomega.Expect(err).To(gomega.MatchError(ErrNotOwner))
		})
	})

	ginkgo.Describe("Submit", func() {
		ginkgo.It("should record a submission before the due date", func() {
			a := createAssignment(7)

			content := "My answers"
			sub, err := service.Submit(a.ID, 21, SubmitAssignmentDTO{Content: &content})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(sub.StudentID).To(gomega.Equal(int64(21)))
			gomega.Expect(sub.IsGraded()).To(gomega.BeFalse())
		})

		ginkgo.It("should reject a second submission from the same student", func() {
			a := createAssignment(7)

			_, err := service.Submit(a.ID, 21, SubmitAssignmentDTO{})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.Submit(a.ID, 21, SubmitAssignmentDTO{})
			gomega.Expect(err).To(gomega.MatchError(ErrAlreadySubmitted))
		})

		ginkgo.It("should allow different students independently", func() {
			a := createAssignment(7)

			_, err := service.Submit(a.ID, 21, SubmitAssignmentDTO{})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.Submit(a.ID, 22, SubmitAssignmentDTO{})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should reject a late submission", func() {
			a, err := service.CreateAssignment(7, CreateAssignmentDTO{
				ClassroomID: 1,
				Subject:     "Mathematics",
				Title:       "Last week's homework",
				DueDate:     time.Now().Add(time.Minute),
				MaxScore:    100,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			// Push the due date into the past after creation.
			stored := repo.assignments[a.ID]
			stored.DueDate = time.Now().Add(-time.Hour)

			_, err = service.Submit(a.ID, 21, SubmitAssignmentDTO{})
			gomega.Expect(err).To(gomega.MatchError(ErrPastDueDate))
		})
	})

	ginkgo.Describe("GradeSubmission", func() {
		submit := func(a *Assignment, studentID int64) *Submission {
			sub, err := service.Submit(a.ID, studentID, SubmitAssignmentDTO{})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			return sub
		}

		ginkgo.It("should score within the assignment maximum", func() {
			a := createAssignment(7)
			sub := submit(a, 21)

			graded, err := service.GradeSubmission(sub.ID, 3, GradeSubmissionDTO{Score: 85})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(*graded.Score).To(gomega.Equal(85))
			gomega.Expect(*graded.GradedBy).To(gomega.Equal(int64(3)))
			gomega.Expect(graded.IsGraded()).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a score above the maximum", func() {
			a := createAssignment(7)
			sub := submit(a, 21)

			_, err := service.GradeSubmission(sub.ID, 3, GradeSubmissionDTO{Score: 101})
			gomega.Expect(err).To(gomega.MatchError(ErrScoreOutOfRange))
		})

		ginkgo.It("should reject a negative score", func() {
			a := createAssignment(7)
			sub := submit(a, 21)

			_, err := service.GradeSubmission(sub.ID, 3, GradeSubmissionDTO{Score: -1})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should report a missing submission", func() {
			_, err := service.GradeSubmission(12345, 3, GradeSubmissionDTO{Score: 50})
			gomega.Expect(err).To(gomega.MatchError(ErrSubmissionNotFound))
		})
	})
})
