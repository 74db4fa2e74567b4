package jobs

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hireboard/hireboard/internal/platform/httpx"
	"github.com/hireboard/hireboard/internal/rbac"
	"github.com/hireboard/hireboard/internal/shared"
)

// SavedJobs is the saved-jobs surface reachable from job routes.
type SavedJobs interface {
	Save(ctx context.Context, userID, jobID string) (bool, error)
	Unsave(ctx context.Context, userID, jobID string) (bool, error)
}

// Handler exposes job endpoints.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	savedJobs    SavedJobs
	authenticate func(http.Handler) http.Handler
	rbac         rbac.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, savedJobs SavedJobs, authenticate func(http.Handler) http.Handler, rbac rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, savedJobs: savedJobs, authenticate: authenticate, rbac: rbac}
}

// MountRoutes registers job routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)
		r.Get("/", h.List)
		r.Get("/{id}", h.Show)
		r.Post("/{id}/save", h.Save)
		r.Post("/{id}/unsave", h.Unsave)
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.Recruiter())
			r.Post("/", h.Create)
			r.Get("/mine", h.ListMine)
			r.Put("/{id}", h.Update)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	var form CreateForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	job, err := h.service.Create(r.Context(), principal, form)
	if err != nil {
		h.fail(w, "create job failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Job posted successfully",
		"job":     job,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobs, pagination, err := h.service.List(r.Context(), strings.TrimSpace(q.Get("keyword")), shared.PageRequestFromQuery(q))
	if err != nil {
		h.fail(w, "list jobs failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"jobs":       jobs,
		"pagination": pagination,
	})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	jobs, err := h.service.ListMine(r.Context(), principal)
	if err != nil {
		h.fail(w, "list own jobs failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "jobs": jobs})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "get job failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "job": job})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	var form UpdateForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	job, err := h.service.Update(r.Context(), principal, chi.URLParam(r, "id"), form)
	if err != nil {
		h.fail(w, "update job failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "job": job})
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	if _, err := h.savedJobs.Save(r.Context(), principal.UserID, chi.URLParam(r, "id")); err != nil {
		h.fail(w, "save job failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Job saved successfully"})
}

func (h *Handler) Unsave(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	if _, err := h.savedJobs.Unsave(r.Context(), principal.UserID, chi.URLParam(r, "id")); err != nil {
		h.fail(w, "unsave job failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Job removed from saved jobs"})
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	if httpx.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
	}
	httpx.RespondError(w, err)
}
