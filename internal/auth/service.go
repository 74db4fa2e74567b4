package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hireboard/hireboard/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo     Repository
	hasher   PasswordHasher
	tokens   *TokenService
	denylist Denylist
	logger   *slog.Logger
}

// NewService constructs a new Service. denylist may be nil, in which case
// logout only clears the client cookie.
func NewService(repo Repository, hasher PasswordHasher, tokens *TokenService, denylist Denylist, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, hasher: hasher, tokens: tokens, denylist: denylist, logger: logger}
}

// Authenticate validates email/password credentials for the requested role.
// Unknown email, wrong password and role mismatch are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string, role shared.Role) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrRepository) {
			return nil, err
		}
		return nil, shared.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, shared.ErrInvalidCredentials
	}
	if user.Role != role {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string, role shared.Role) (*User, Token, error) {
	user, err := s.Authenticate(ctx, email, password, role)
	if err != nil {
		return nil, Token{}, err
	}
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, Token{}, err
	}
	return user, token, nil
}

// Logout revokes raw until its natural expiry when a denylist is configured.
// Invalid or already expired tokens need no revocation and are ignored.
func (s *Service) Logout(ctx context.Context, raw string) error {
	if s.denylist == nil || raw == "" {
		return nil
	}
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return shared.RepositoryError("auth: revoke token", err)
	}
	s.logger.Info("session revoked", slog.String("user_id", claims.Subject))
	return nil
}
