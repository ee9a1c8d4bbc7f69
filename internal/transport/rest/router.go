package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/hanifm/school-management/internal/assignment"
	"github.com/hanifm/school-management/internal/attendance"
	"github.com/hanifm/school-management/internal/auth"
	"github.com/hanifm/school-management/internal/classroom"
	"github.com/hanifm/school-management/internal/cms"
	"github.com/hanifm/school-management/internal/crm"
	"github.com/hanifm/school-management/internal/fee"
	"github.com/hanifm/school-management/internal/grade"
	"github.com/hanifm/school-management/internal/notification"
	"github.com/hanifm/school-management/internal/student"
	"github.com/hanifm/school-management/internal/teacher"
	"github.com/hanifm/school-management/internal/transport/middleware"
	"github.com/hanifm/school-management/internal/transport/swagger"
	"github.com/hanifm/school-management/internal/user"
)

// Handlers bundles every HTTP handler the router mounts. Nil entries
// are skipped so partial wiring stays possible in tests.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Student      *student.Handler
	Teacher      *teacher.Handler
	Classroom    *classroom.Handler
	Assignment   *assignment.Handler
	Grade        *grade.Handler
	Attendance   *attendance.Handler
	Fee          *fee.Handler
	Notification *notification.Handler
	CMS          *cms.Handler
	CRM          *crm.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, rbac *auth.RBAC, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
			})
		}

		// Published pages are the public site; no bearer token needed.
		if h.CMS != nil {
			r.Get("/pages/{slug}", h.CMS.GetPublishedPage)
		}

		if h.Auth == nil {
			return
		}

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/auth", func(sr chi.Router) {
				sr.Post("/logout", h.Auth.Logout)
				sr.Get("/me", h.Auth.Me)
				sr.Post("/change-password", h.Auth.ChangePassword)
				sr.Get("/sessions", h.Auth.ListSessions)
				sr.Delete("/sessions/{id}", h.Auth.RevokeSession)
			})

			if h.User != nil {
				pr.Route("/users", func(ur chi.Router) {
					ur.With(rbac.Require(auth.PermUserList)).Get("/", h.User.ListUsers)
					ur.With(rbac.Require(auth.PermUserCreate)).Post("/", h.User.CreateUser)
					ur.With(rbac.Require(auth.PermUserRead)).Get("/{userID}", h.User.GetUser)
					ur.With(rbac.Require(auth.PermUserUpdate)).Patch("/{userID}", h.User.UpdateUser)
					ur.With(rbac.Require(auth.PermUserDelete)).Delete("/{userID}", h.User.DeactivateUser)
					ur.With(rbac.Require(auth.PermUserUpdate)).Post("/{userID}/activate", h.User.ActivateUser)
				})
			}

			if h.Student != nil {
				pr.Route("/students", func(sr chi.Router) {
					sr.With(rbac.Require(auth.PermStudentList)).Get("/", h.Student.ListStudents)
					sr.With(rbac.Require(auth.PermStudentCreate)).Post("/", h.Student.CreateStudent)
					sr.With(rbac.Require(auth.PermStudentRead)).Get("/{id}", h.Student.GetStudent)
					sr.With(rbac.Require(auth.PermStudentUpdate)).Patch("/{id}", h.Student.UpdateStudent)
					sr.With(rbac.Require(auth.PermStudentDelete)).Delete("/{id}", h.Student.DeleteStudent)
				})
			}

			if h.Teacher != nil {
				pr.Route("/teachers", func(tr chi.Router) {
					tr.With(rbac.Require(auth.PermTeacherList)).Get("/", h.Teacher.ListTeachers)
					tr.With(rbac.Require(auth.PermTeacherCreate)).Post("/", h.Teacher.CreateTeacher)
					tr.With(rbac.Require(auth.PermTeacherRead)).Get("/{id}", h.Teacher.GetTeacher)
					tr.With(rbac.Require(auth.PermTeacherUpdate)).Patch("/{id}", h.Teacher.UpdateTeacher)
					tr.With(rbac.Require(auth.PermTeacherDelete)).Delete("/{id}", h.Teacher.DeleteTeacher)
				})
			}

			if h.Classroom != nil {
				pr.Route("/classrooms", func(cr chi.Router) {
					cr.With(rbac.Require(auth.PermClassList)).Get("/", h.Classroom.ListClassrooms)
					cr.With(rbac.Require(auth.PermClassCreate)).Post("/", h.Classroom.CreateClassroom)
					cr.With(rbac.Require(auth.PermClassRead)).Get("/{id}", h.Classroom.GetClassroom)
					cr.With(rbac.Require(auth.PermClassUpdate)).Patch("/{id}", h.Classroom.UpdateClassroom)
					cr.With(rbac.Require(auth.PermClassAssignTeacher)).Post("/{id}/teacher", h.Classroom.AssignTeacher)
					cr.With(rbac.Require(auth.PermClassDelete)).Delete("/{id}", h.Classroom.DeleteClassroom)
				})
			}

			if h.Assignment != nil {
				pr.Route("/assignments", func(ar chi.Router) {
					ar.With(rbac.Require(auth.PermAssignmentList)).Get("/", h.Assignment.ListAssignments)
					ar.With(rbac.Require(auth.PermAssignmentCreate)).Post("/", h.Assignment.CreateAssignment)
					ar.With(rbac.Require(auth.PermAssignmentRead)).Get("/{id}", h.Assignment.GetAssignment)
					ar.With(rbac.Require(auth.PermAssignmentUpdate)).Patch("/{id}", h.Assignment.UpdateAssignment)
					ar.With(rbac.Require(auth.PermAssignmentDelete)).Delete("/{id}", h.Assignment.DeleteAssignment)
					ar.With(rbac.Require(auth.PermAssignmentSubmit)).Post("/{id}/submissions", h.Assignment.SubmitAssignment)
					ar.With(rbac.Require(auth.PermAssignmentGrade)).Get("/{id}/submissions", h.Assignment.ListSubmissions)
					ar.With(rbac.Require(auth.PermAssignmentGrade)).Post("/submissions/{submissionID}/grade", h.Assignment.GradeSubmission)
				})
			}

			if h.Grade != nil {
				pr.Route("/grades", func(gr chi.Router) {
					gr.With(rbac.Require(auth.PermGradeList)).Get("/", h.Grade.ListGrades)
					gr.With(rbac.Require(auth.PermGradeCreate)).Post("/", h.Grade.CreateGrade)
					gr.With(rbac.Require(auth.PermGradeRead)).Get("/{id}", h.Grade.GetGrade)
					gr.With(rbac.Require(auth.PermGradeUpdate)).Patch("/{id}", h.Grade.UpdateGrade)
				})
			}

			if h.Attendance != nil {
				pr.Route("/attendance", func(ar chi.Router) {
					ar.With(rbac.Require(auth.PermAttendanceMark)).Post("/", h.Attendance.MarkAttendance)
					ar.With(rbac.Require(auth.PermAttendanceList)).Get("/", h.Attendance.ListAttendance)
				})
			}

			if h.Fee != nil {
				pr.Route("/fees", func(fr chi.Router) {
					fr.With(rbac.Require(auth.PermFeeList)).Get("/", h.Fee.ListFees)
					fr.With(rbac.Require(auth.PermFeeCreate)).Post("/", h.Fee.CreateFee)
					fr.With(rbac.Require(auth.PermFeeRead)).Get("/{feeID}", h.Fee.GetFee)
					fr.With(rbac.Require(auth.PermFeePayment)).Post("/{feeID}/payments", h.Fee.RecordPayment)
					fr.With(rbac.Require(auth.PermFeeRead)).Get("/{feeID}/payments", h.Fee.ListPayments)
				})
			}

			if h.Notification != nil {
				pr.Route("/notifications", func(nr chi.Router) {
					nr.With(rbac.Require(auth.PermCommunicationRead)).Get("/", h.Notification.ListNotifications)
					nr.With(rbac.Require(auth.PermCommunicationRead)).Post("/{notificationID}/read", h.Notification.MarkRead)
					nr.With(rbac.Require(auth.PermCommunicationRead)).Post("/read-all", h.Notification.MarkAllRead)
					nr.With(rbac.Require(auth.PermCommunicationBroadcast)).Post("/broadcast", h.Notification.Broadcast)
				})
			}

			if h.CMS != nil {
				pr.Route("/cms/pages", func(cr chi.Router) {
					cr.With(rbac.Require(auth.PermCMSList)).Get("/", h.CMS.ListPages)
					cr.With(rbac.Require(auth.PermCMSCreate)).Post("/", h.CMS.CreatePage)
					cr.With(rbac.Require(auth.PermCMSRead)).Get("/{pageID}", h.CMS.GetPage)
					cr.With(rbac.Require(auth.PermCMSUpdate)).Patch("/{pageID}", h.CMS.UpdatePage)
					cr.With(rbac.Require(auth.PermCMSPublish)).Post("/{pageID}/publish", h.CMS.PublishPage)
					cr.With(rbac.Require(auth.PermCMSPublish)).Post("/{pageID}/unpublish", h.CMS.UnpublishPage)
					cr.With(rbac.Require(auth.PermCMSDelete)).Delete("/{pageID}", h.CMS.DeletePage)
				})
			}

			if h.CRM != nil {
				pr.Route("/crm/leads", func(lr chi.Router) {
					lr.With(rbac.Require(auth.PermCRMList)).Get("/", h.CRM.ListLeads)
					lr.With(rbac.Require(auth.PermCRMCreate)).Post("/", h.CRM.CreateLead)
					lr.With(rbac.Require(auth.PermCRMRead)).Get("/{leadID}", h.CRM.GetLead)
					lr.With(rbac.Require(auth.PermCRMUpdate)).Post("/{leadID}/assign", h.CRM.AssignLead)
					lr.With(rbac.Require(auth.PermCRMUpdate)).Post("/{leadID}/move", h.CRM.MoveLead)
					lr.With(rbac.Require(auth.PermCRMConvertLead)).Post("/{leadID}/convert", h.CRM.ConvertLead)
				})
			}
		})
	})
}
