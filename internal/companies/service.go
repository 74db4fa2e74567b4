package companies

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hireboard/hireboard/internal/rbac"
	"github.com/hireboard/hireboard/internal/shared"
)

// Service implements company business rules.
type Service struct {
	repo      Repository
	validator *validator.Validate
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validator: shared.NewValidator()}
}

// Register creates a company owned by principal.
func (s *Service) Register(ctx context.Context, principal shared.Principal, form CreateForm) (Company, error) {
	name := strings.TrimSpace(form.name())
	if name == "" {
		return Company{}, shared.NewValidationError(map[string]string{"name": "is required"})
	}
	return s.repo.Create(ctx, Company{ID: uuid.NewString(), UserID: principal.UserID, Name: name})
}

// ListMine returns the companies owned by principal.
func (s *Service) ListMine(ctx context.Context, principal shared.Principal) ([]Company, error) {
	return s.repo.ListByOwner(ctx, principal.UserID)
}

// Get returns a company by id.
func (s *Service) Get(ctx context.Context, id string) (Company, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Company{}, shared.NotFoundError("company")
	}
	return s.repo.Get(ctx, id)
}

// Owned returns the company only when principal owns it.
func (s *Service) Owned(ctx context.Context, principal shared.Principal, id string) (Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return Company{}, err
	}
	if err := rbac.RequireOwner(principal, company.UserID); err != nil {
		return Company{}, err
	}
	return company, nil
}

// Update applies form to a company owned by principal.
func (s *Service) Update(ctx context.Context, principal shared.Principal, id string, form UpdateForm) (Company, error) {
	if err := shared.ValidateStruct(s.validator, form); err != nil {
		return Company{}, err
	}
	company, err := s.Owned(ctx, principal, id)
	if err != nil {
		return Company{}, err
	}
	if v := strings.TrimSpace(form.Name); v != "" {
		company.Name = v
	}
	if v := strings.TrimSpace(form.Description); v != "" {
		company.Description = v
	}
	if v := strings.TrimSpace(form.Website); v != "" {
		company.Website = v
	}
	if v := strings.TrimSpace(form.Location); v != "" {
		company.Location = v
	}
	if v := strings.TrimSpace(form.Logo); v != "" {
		company.Logo = v
	}
	return s.repo.Update(ctx, company)
}
