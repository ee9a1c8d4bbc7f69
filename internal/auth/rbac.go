package auth

import (
	"log/slog"
	"net/http"

	"github.com/hanifm/school-management/internal"
)

// RBAC gates endpoints on the static role to permission table. It is
// stateless; every decision is a lookup against the injected table.
type RBAC struct {
	roles  *RoleTable
	logger *slog.Logger
}

func NewRBAC(roles *RoleTable, logger *slog.Logger) *RBAC {
	return &RBAC{
		roles:  roles,
		logger: logger,
	}
}

// Require allows the request through only when the caller's role grants
// the permission. Missing identity is 401, insufficient role is 403.
func (ra *RBAC) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				ra.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !ra.roles.HasPermission(Role(user.Role), permission) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"role", user.Role,
					"required_permission", permission)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny allows the request through when the role grants at least one
// of the listed permissions.
func (ra *RBAC) RequireAny(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, permission := range permissions {
				if ra.roles.HasPermission(Role(user.Role), permission) {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"user_id", user.ID,
				"role", user.Role,
				"required_any", permissions)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}

// RequireAdmin is shorthand for routes only administrators may hit.
func (ra *RBAC) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if Role(user.Role) != RoleAdmin {
				ra.logger.WarnContext(r.Context(), "access denied: admin role required", "user_id", user.ID, "role", user.Role)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
