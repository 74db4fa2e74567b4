package rbac

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hireboard/hireboard/internal/platform/httpx"
	"github.com/hireboard/hireboard/internal/shared"
)

// Middleware wires role checks for HTTP handlers. It must run behind the
// session gate.
type Middleware struct {
	Logger *slog.Logger
}

// RequireRole ensures the current principal has one of roles.
func (m Middleware) RequireRole(roles ...shared.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := shared.PrincipalFromContext(r.Context())
			if err := Require(principal, roles...); err != nil {
				if errors.Is(err, shared.ErrForbidden) && m.Logger != nil {
					m.Logger.Debug("rbac require role",
						slog.String("user_id", principal.UserID),
						slog.String("role", string(principal.Role)),
						slog.String("path", r.URL.Path),
					)
				}
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Candidate gates candidate-only routes.
func (m Middleware) Candidate() func(http.Handler) http.Handler {
	return m.RequireRole(shared.RoleCandidate)
}

// Recruiter gates recruiter-only routes.
func (m Middleware) Recruiter() func(http.Handler) http.Handler {
	return m.RequireRole(shared.RoleRecruiter)
}
