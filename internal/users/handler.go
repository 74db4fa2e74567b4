package users

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hireboard/hireboard/internal/platform/httpx"
	"github.com/hireboard/hireboard/internal/saved"
	"github.com/hireboard/hireboard/internal/shared"
)

// SavedJobs is the saved-jobs surface the handler needs.
type SavedJobs interface {
	Save(ctx context.Context, userID, jobID string) (bool, error)
	Unsave(ctx context.Context, userID, jobID string) (bool, error)
	List(ctx context.Context, userID string) ([]saved.SavedJob, error)
}

// Handler manages user endpoints.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	savedJobs    SavedJobs
	authenticate func(http.Handler) http.Handler
}

// NewHandler builds Handler instance. authenticate is the session gate middleware.
func NewHandler(logger *slog.Logger, service *Service, savedJobs SavedJobs, authenticate func(http.Handler) http.Handler) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, savedJobs: savedJobs, authenticate: authenticate}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.register)
	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)
		r.Get("/me", h.me)
		r.Put("/me/profile", h.updateProfile)
		r.Get("/me/saved-jobs", h.listSavedJobs)
		r.Put("/me/saved-jobs/{jobID}", h.saveJob)
		r.Delete("/me/saved-jobs/{jobID}", h.unsaveJob)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	user, err := h.service.Register(r.Context(), in)
	if err != nil {
		h.fail(w, "register user", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	me, err := h.service.Me(r.Context(), principal.UserID)
	if err != nil {
		h.fail(w, "load current user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "user": me})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	var in ProfileUpdate
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	user, err := h.service.UpdateProfile(r.Context(), principal.UserID, in)
	if err != nil {
		h.fail(w, "update profile", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *Handler) listSavedJobs(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	jobs, err := h.savedJobs.List(r.Context(), principal.UserID)
	if err != nil {
		h.fail(w, "list saved jobs", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "savedJobs": jobs})
}

func (h *Handler) saveJob(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	added, err := h.savedJobs.Save(r.Context(), principal.UserID, chi.URLParam(r, "jobID"))
	if err != nil {
		h.fail(w, "save job", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Job saved successfully",
		"added":   added,
	})
}

func (h *Handler) unsaveJob(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	removed, err := h.savedJobs.Unsave(r.Context(), principal.UserID, chi.URLParam(r, "jobID"))
	if err != nil {
		h.fail(w, "unsave job", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Job removed from saved jobs",
		"removed": removed,
	})
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if httpx.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
