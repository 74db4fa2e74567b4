package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hireboard/hireboard/internal/saved"
	"github.com/hireboard/hireboard/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	Create(ctx context.Context, in NewUser) (User, error)
	Get(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, user User) (User, error)
}

// Hasher derives the stored password hash.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// SavedJobLister resolves a user's saved jobs.
type SavedJobLister interface {
	List(ctx context.Context, userID string) ([]saved.SavedJob, error)
}

// Service handles user business logic.
type Service struct {
	repo      RepositoryPort
	hasher    Hasher
	savedJobs SavedJobLister
	validator *validator.Validate
	logger    *slog.Logger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, hasher Hasher, savedJobs SavedJobLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		hasher:    hasher,
		savedJobs: savedJobs,
		validator: shared.NewValidator(),
		logger:    logger,
	}
}

// Register creates a new account with an empty profile.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Fullname = strings.TrimSpace(in.Fullname)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if err := shared.ValidateStruct(s.validator, in); err != nil {
		return User{}, err
	}
	role, _ := shared.ParseRole(in.Role)

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}
	user, err := s.repo.Create(ctx, NewUser{
		ID:           uuid.NewString(),
		Fullname:     in.Fullname,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		Role:         role,
		Profile:      Profile{Skills: []string{}, ProfilePhoto: DefaultProfilePhoto},
	})
	if err != nil {
		return User{}, err
	}
	s.logger.Info("user registered", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return user, nil
}

// Me loads the stored account of userID together with its saved jobs.
func (s *Service) Me(ctx context.Context, userID string) (Me, error) {
	var (
		user User
		jobs []saved.SavedJob
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.repo.Get(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = s.savedJobs.List(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Me{}, err
	}
	return Me{User: user, SavedJobs: jobs}, nil
}

// UpdateProfile applies the non-empty fields of in to the stored account.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (User, error) {
	if err := shared.ValidateStruct(s.validator, in); err != nil {
		return User{}, err
	}
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if v := strings.TrimSpace(in.Fullname); v != "" {
		user.Fullname = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		user.Email = strings.ToLower(v)
	}
	if v := strings.TrimSpace(in.PhoneNumber); v != "" {
		user.PhoneNumber = v
	}
	if v := strings.TrimSpace(in.Bio); v != "" {
		user.Profile.Bio = v
	}
	if in.Skills != nil {
		user.Profile.Skills = []string(in.Skills)
	}
	return s.repo.Update(ctx, user)
}
