package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hireboard/hireboard/internal/platform/httpx"
	"github.com/hireboard/hireboard/internal/shared"
)

// FailureObserver is notified of every rejected credential.
type FailureObserver interface {
	AuthFailure(reason string)
}

// GateConfig groups the Gate dependencies.
type GateConfig struct {
	Logger     *slog.Logger
	Tokens     *TokenService
	Denylist   Denylist
	CookieName string
	Observer   FailureObserver
}

// Gate resolves the request credential into a principal.
type Gate struct {
	logger     *slog.Logger
	tokens     *TokenService
	denylist   Denylist
	cookieName string
	observer   FailureObserver
}

// NewGate constructs a Gate. Denylist and Observer are optional.
func NewGate(cfg GateConfig) *Gate {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Gate{
		logger:     logger,
		tokens:     cfg.Tokens,
		denylist:   cfg.Denylist,
		cookieName: cookieName,
		observer:   cfg.Observer,
	}
}

// ExtractToken returns the single candidate token of r. A bearer Authorization
// header takes precedence over the cookie; a header with another scheme or an
// empty value is ignored.
func ExtractToken(r *http.Request, cookieName string) (string, bool) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, value, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			if token := strings.TrimSpace(value); token != "" {
				return token, true
			}
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

// Authenticate resolves r to a principal. Every failure is reported as
// shared.ErrUnauthenticated wrapping the internal reason.
func (g *Gate) Authenticate(r *http.Request) (shared.Principal, error) {
	raw, ok := ExtractToken(r, g.cookieName)
	if !ok {
		return shared.Principal{}, g.reject(r, errNoCredential)
	}
	claims, err := g.tokens.Verify(raw)
	if err != nil {
		return shared.Principal{}, g.reject(r, err)
	}
	if g.denylist != nil {
		revoked, err := g.denylist.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			return shared.Principal{}, shared.RepositoryError("auth: denylist lookup", err)
		}
		if revoked {
			return shared.Principal{}, g.reject(r, ErrRevokedToken)
		}
	}
	if !claims.Role.Valid() {
		return shared.Principal{}, g.reject(r, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role))
	}
	return shared.Principal{UserID: claims.Subject, Role: claims.Role, TokenID: claims.ID}, nil
}

// Middleware rejects unauthenticated requests with 401 and binds the principal
// to the request context for downstream handlers.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := g.Authenticate(r)
		if err != nil {
			if errors.Is(err, shared.ErrUnauthenticated) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="hireboard"`)
			} else {
				g.logger.Error("session gate", slog.Any("error", err))
			}
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
	})
}

func (g *Gate) reject(r *http.Request, reason error) error {
	label := failureLabel(reason)
	g.logger.Debug("session gate rejected request",
		slog.String("reason", label),
		slog.String("path", r.URL.Path),
	)
	if g.observer != nil {
		g.observer.AuthFailure(label)
	}
	return fmt.Errorf("%w: %w", shared.ErrUnauthenticated, reason)
}

func failureLabel(err error) string {
	switch {
	case errors.Is(err, errNoCredential):
		return "missing"
	case errors.Is(err, ErrExpiredToken):
		return "expired"
	case errors.Is(err, ErrRevokedToken):
		return "revoked"
	default:
		return "invalid"
	}
}
