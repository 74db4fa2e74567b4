package applications

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hireboard/hireboard/internal/platform/httpx"
	"github.com/hireboard/hireboard/internal/rbac"
	"github.com/hireboard/hireboard/internal/shared"
)

// Handler exposes application endpoints spread over /jobs, /users and /applications.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	authenticate func(http.Handler) http.Handler
	rbac         rbac.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, authenticate func(http.Handler) http.Handler, rbac rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, authenticate: authenticate, rbac: rbac}
}

// MountRoutes registers /applications routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.authenticate, h.rbac.Recruiter()).Patch("/{id}/status", h.UpdateStatus)
}

// MountJobRoutes registers the per-job routes on the /jobs router.
func (h *Handler) MountJobRoutes(r chi.Router) {
	r.With(h.authenticate, h.rbac.Candidate()).Post("/{id}/applications", h.Apply)
	r.With(h.authenticate, h.rbac.Recruiter()).Get("/{id}/applications", h.Applicants)
}

// MountUserRoutes registers the current user's routes on the /users router.
func (h *Handler) MountUserRoutes(r chi.Router) {
	r.With(h.authenticate, h.rbac.Candidate()).Get("/me/applications", h.ListMine)
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	app, err := h.service.Apply(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "apply failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Job applied successfully",
		"application": app,
	})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	apps, err := h.service.ListMine(r.Context(), principal)
	if err != nil {
		h.fail(w, "list applications failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "applications": apps})
}

func (h *Handler) Applicants(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	apps, err := h.service.Applicants(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "list applicants failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "applications": apps})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	var form StatusForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	app, err := h.service.UpdateStatus(r.Context(), principal, chi.URLParam(r, "id"), form)
	if err != nil {
		h.fail(w, "update application status failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Status updated successfully",
		"application": app,
	})
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	if httpx.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
	}
	httpx.RespondError(w, err)
}
