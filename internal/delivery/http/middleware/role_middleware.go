package middleware

import (
	"net/http"
	"slices"
	"strings"

	"health-wheel/internal/domain/entity"
	"health-wheel/pkg/response"
)

// RequireRole admits sessions whose patient record carries one of roles.
// Stored roles mix cases ("ADMIN", "user"), so the match ignores case.
// Must run after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Invalid session")
				return
			}

			role = strings.TrimSpace(role)
			if !slices.ContainsFunc(roles, func(allowed string) bool { return strings.EqualFold(role, allowed) }) {
				response.Forbidden(w, "This action is reserved to "+strings.Join(roles, " or ")+" accounts")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards patient management and any route acting on another
// patient's record.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
