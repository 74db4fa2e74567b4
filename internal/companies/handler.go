package companies

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hireboard/hireboard/internal/platform/httpx"
	"github.com/hireboard/hireboard/internal/rbac"
	"github.com/hireboard/hireboard/internal/shared"
)

// Handler exposes company endpoints.
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

// MountRoutes registers company routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)
		r.Get("/{id}", h.Show)
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.Recruiter())
			r.Post("/", h.Create)
			r.Get("/", h.List)
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
	company, err := h.service.Register(r.Context(), principal, form)
	if err != nil {
		h.fail(w, "create company failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Company registered successfully",
		"company": company,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	companies, err := h.service.ListMine(r.Context(), principal)
	if err != nil {
		h.fail(w, "list companies failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "companies": companies})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	company, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "get company failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "company": company})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	var form UpdateForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	company, err := h.service.Update(r.Context(), principal, chi.URLParam(r, "id"), form)
	if err != nil {
		h.fail(w, "update company failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Company information updated",
		"company": company,
	})
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	if httpx.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
	}
	httpx.RespondError(w, err)
}
