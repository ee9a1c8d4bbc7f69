package assignment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/hanifm/school-management/internal"
)

var _ = ginkgo.Describe("AssignmentHandler", func() {
	var (
		repo    *mockAssignmentRepository
		handler *Handler
	)

	// Account ids and teacher/student record ids live in different
	// tables and diverge as soon as non-teacher accounts exist.
	teacherUser := &internal.AuthUser{ID: 3, Email: "budi.t@school.test", Role: "teacher"}
	studentUser := &internal.AuthUser{ID: 4, Email: "siti.s@school.test", Role: "student"}
	staffUser := &internal.AuthUser{ID: 5, Email: "staff@school.test", Role: "staff"}

	ginkgo.BeforeEach(func() {
		repo = newMockAssignmentRepository()
		handler = NewHandler(
			NewService(repo, testLogger()),
			&mockStudentResolver{byUser: map[int64]int64{studentUser.ID: 2}},
			&mockTeacherResolver{byUser: map[int64]int64{teacherUser.ID: 1}},
		)
	})

	createRequest := func(user *internal.AuthUser) *http.Request {
		body, err := json.Marshal(CreateAssignmentDTO{
			ClassroomID: 1,
			Subject:     "Mathematics",
			Title:       "Chapter 3 exercises",
			DueDate:     time.Now().AddDate(0, 0, 7),
			MaxScore:    100,
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/assignments", bytes.NewReader(body))
		return req.WithContext(internal.ContextWithUser(req.Context(), user))
	}

	ginkgo.Describe("CreateAssignment", func() {
		ginkgo.It("should attribute the row to the caller's teacher record", func() {
			rec := httptest.NewRecorder()

			handler.CreateAssignment(rec, createRequest(teacherUser))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))

			var created Assignment
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(gomega.Succeed())
			gomega.Expect(created.TeacherID).To(gomega.Equal(int64(1)))
			gomega.Expect(created.TeacherID).NotTo(gomega.Equal(teacherUser.ID))

			stored, err := repo.GetByID(created.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stored.TeacherID).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should refuse an account without a teacher record", func() {
			rec := httptest.NewRecorder()

			handler.CreateAssignment(rec, createRequest(staffUser))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(repo.assignments).To(gomega.BeEmpty())
		})

		ginkgo.It("should require an authenticated caller", func() {
			body, _ := json.Marshal(CreateAssignmentDTO{})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/assignments", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.CreateAssignment(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
