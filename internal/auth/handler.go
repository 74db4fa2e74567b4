package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/hireboard/hireboard/internal/platform/httpx"
	"github.com/hireboard/hireboard/internal/shared"
	"github.com/hireboard/hireboard/internal/users"
)

// ProfileLoader returns the stored profile of a user.
type ProfileLoader interface {
	Me(ctx context.Context, userID string) (users.Me, error)
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	profiles   ProfileLoader
	cookies    CookieWriter
	cookieName string
	loginLimit int
	validator  *validator.Validate
	now        func() time.Time
}

// HandlerConfig groups Handler dependencies.
type HandlerConfig struct {
	Logger     *slog.Logger
	Service    *Service
	Profiles   ProfileLoader
	Cookies    CookieWriter
	LoginLimit int
}

// NewHandler constructs a Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:     logger,
		service:    cfg.Service,
		profiles:   cfg.Profiles,
		cookies:    cfg.Cookies,
		cookieName: cfg.Cookies.name(),
		loginLimit: cfg.LoginLimit,
		validator:  shared.NewValidator(),
		now:        time.Now,
	}
}

// MountRoutes registers session routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	login := http.HandlerFunc(h.handleLogin)
	if h.loginLimit > 0 {
		r.With(httprate.LimitByIP(h.loginLimit, time.Minute)).Post("/", login)
	} else {
		r.Post("/", login)
	}
	r.Get("/", h.handleLogout)
}

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=candidate recruiter"`
}

type loginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      users.Me  `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := shared.ValidateStruct(h.validator, form); err != nil {
		httpx.RespondError(w, err)
		return
	}

	user, token, err := h.service.Login(r.Context(), form.Email, form.Password, shared.Role(form.Role))
	if err != nil {
		if httpx.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("login", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}

	// The response always carries the stored profile, never one built from the form.
	me, err := h.profiles.Me(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("load profile after login", slog.Any("error", err), slog.String("user_id", user.ID))
		httpx.RespondError(w, err)
		return
	}

	h.cookies.Set(w, token, h.now())
	w.Header().Set("Authorization", "Bearer "+token.Value)
	httpx.JSON(w, http.StatusOK, loginResponse{
		Success:   true,
		Message:   "Welcome back " + me.Fullname,
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      me,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if raw, ok := ExtractToken(r, h.cookieName); ok {
		if err := h.service.Logout(r.Context(), raw); err != nil {
			h.logger.Warn("revoke session", slog.Any("error", err))
		}
	}
	h.cookies.Clear(w)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}
