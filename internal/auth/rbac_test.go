package auth

import (
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/hanifm/school-management/internal"
)

var _ = ginkgo.Describe("RoleTable", func() {
	var table *RoleTable

	ginkgo.BeforeEach(func() {
		table = NewRoleTable()
	})

	ginkgo.It("should grant admins every permission", func() {
		for _, p := range allPermissions {
			gomega.Expect(table.HasPermission(RoleAdmin, p)).To(gomega.BeTrue(), p)
		}
	})

	ginkgo.It("should let teachers grade but not manage fees", func() {
		gomega.Expect(table.HasPermission(RoleTeacher, PermAssignmentGrade)).To(gomega.BeTrue())
		gomega.Expect(table.HasPermission(RoleTeacher, PermAttendanceMark)).To(gomega.BeTrue())
		gomega.Expect(table.HasPermission(RoleTeacher, PermFeeCreate)).To(gomega.BeFalse())
		gomega.Expect(table.HasPermission(RoleTeacher, PermUserCreate)).To(gomega.BeFalse())
	})

	ginkgo.It("should let students submit assignments but not grade them", func() {
		gomega.Expect(table.HasPermission(RoleStudent, PermAssignmentSubmit)).To(gomega.BeTrue())
		gomega.Expect(table.HasPermission(RoleStudent, PermAssignmentGrade)).To(gomega.BeFalse())
	})

	ginkgo.It("should let parents pay fees but not mark attendance", func() {
		gomega.Expect(table.HasPermission(RoleParent, PermFeePayment)).To(gomega.BeTrue())
		gomega.Expect(table.HasPermission(RoleParent, PermAttendanceMark)).To(gomega.BeFalse())
	})

	ginkgo.It("should confine lead management to staff and admins", func() {
		gomega.Expect(table.HasPermission(RoleStaff, PermCRMCreate)).To(gomega.BeTrue())
		gomega.Expect(table.HasPermission(RoleTeacher, PermCRMCreate)).To(gomega.BeFalse())
		gomega.Expect(table.HasPermission(RoleStudent, PermCRMCreate)).To(gomega.BeFalse())
	})

	ginkgo.It("should return an empty set for an unknown role", func() {
		gomega.Expect(table.PermissionsFor(Role("janitor"))).To(gomega.BeEmpty())
	})
})

var _ = ginkgo.Describe("RBAC middleware", func() {
	var (
		rbac *RBAC
		next http.Handler
	)

	requestAs := func(role string, mw func(http.Handler) http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if role != "" {
			user := &internal.AuthUser{ID: 1, Email: "u@school.test", Role: role}
			req = req.WithContext(internal.ContextWithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		return rec
	}

	ginkgo.BeforeEach(func() {
		rbac = NewRBAC(NewRoleTable(), testLogger())
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	ginkgo.Describe("Require", func() {
		ginkgo.It("should return 401 when no user is on the context", func() {
			rec := requestAs("", rbac.Require(PermStudentList))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 403 when the role lacks the permission", func() {
			rec := requestAs("student", rbac.Require(PermStudentCreate))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should pass the request through when the role has the permission", func() {
			rec := requestAs("teacher", rbac.Require(PermAttendanceMark))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Describe("RequireAny", func() {
		ginkgo.It("should pass when any listed permission matches", func() {
			rec := requestAs("parent", rbac.RequireAny(PermAttendanceMark, PermFeePayment))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should return 403 when none match", func() {
			rec := requestAs("student", rbac.RequireAny(PermUserCreate, PermFeeCreate))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})

	ginkgo.Describe("RequireAdmin", func() {
		ginkgo.It("should only admit administrators", func() {
			gomega.Expect(requestAs("admin", rbac.RequireAdmin()).Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(requestAs("teacher", rbac.RequireAdmin()).Code).To(gomega.Equal(http.StatusForbidden))
		})
	})
})
