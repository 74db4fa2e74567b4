package jobs

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hireboard/hireboard/internal/rbac"
	"github.com/hireboard/hireboard/internal/shared"
)

// Service implements job business rules.
type Service struct {
	repo      Repository
	validator *validator.Validate
	logger    *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, validator: shared.NewValidator(), logger: logger}
}

// Create posts a job for a company owned by principal.
func (s *Service) Create(ctx context.Context, principal shared.Principal, form CreateForm) (Job, error) {
	if err := shared.ValidateStruct(s.validator, form); err != nil {
		return Job{}, err
	}
	requirements := splitRequirements(form.Requirements)
	if len(requirements) == 0 {
		return Job{}, shared.NewValidationError(map[string]string{"requirements": "is required"})
	}
	job, err := s.repo.Create(ctx, Job{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(form.Title),
		Description:     strings.TrimSpace(form.Description),
		Requirements:    requirements,
		Salary:          int64(form.Salary),
		Location:        strings.TrimSpace(form.Location),
		JobType:         strings.TrimSpace(form.JobType),
		ExperienceLevel: int(form.Experience),
		Position:        int(form.Position),
		Company:         CompanyRef{ID: form.CompanyID},
		CreatedBy:       principal.UserID,
	})
	if err != nil {
		return Job{}, err
	}
	s.logger.Info("job posted", slog.String("job_id", job.ID), slog.String("company_id", job.Company.ID))
	return job, nil
}

// List returns jobs whose title or description contains keyword, newest first.
func (s *Service) List(ctx context.Context, keyword string, page shared.PageRequest) ([]Job, shared.Pagination, error) {
	jobs, total, err := s.repo.List(ctx, ListFilter{Keyword: keyword, Limit: page.PerPage, Offset: page.Offset()})
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return jobs, shared.NewPagination(page.Page, page.PerPage, total), nil
}

// ListMine returns the jobs created by principal.
func (s *Service) ListMine(ctx context.Context, principal shared.Principal) ([]Job, error) {
	return s.repo.ListByCreator(ctx, principal.UserID)
}

// Get returns a job by id.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Job{}, shared.NotFoundError("job")
	}
	return s.repo.Get(ctx, id)
}

// Update applies form to a job created by principal.
func (s *Service) Update(ctx context.Context, principal shared.Principal, id string, form UpdateForm) (Job, error) {
	if err := shared.ValidateStruct(s.validator, form); err != nil {
		return Job{}, err
	}
	job, err := s.Get(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if err := rbac.RequireOwner(principal, job.CreatedBy); err != nil {
		return Job{}, err
	}
	if v := strings.TrimSpace(form.Title); v != "" {
		job.Title = v
	}
	if v := strings.TrimSpace(form.Description); v != "" {
		job.Description = v
	}
	if reqs := splitRequirements(form.Requirements); len(reqs) > 0 {
		job.Requirements = reqs
	}
	if form.Salary > 0 {
		job.Salary = int64(form.Salary)
	}
	if v := strings.TrimSpace(form.Location); v != "" {
		job.Location = v
	}
	if v := strings.TrimSpace(form.JobType); v != "" {
		job.JobType = v
	}
	if form.Experience > 0 {
		job.ExperienceLevel = int(form.Experience)
	}
	if form.Position > 0 {
		job.Position = int(form.Position)
	}
	return s.repo.Update(ctx, job)
}
