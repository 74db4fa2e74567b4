package applications

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hireboard/hireboard/internal/jobs"
	"github.com/hireboard/hireboard/internal/rbac"
	"github.com/hireboard/hireboard/internal/shared"
)

// JobLookup resolves the job an application refers to.
type JobLookup interface {
	Get(ctx context.Context, id string) (jobs.Job, error)
}

// Service implements application business rules.
type Service struct {
	repo      Repository
	jobs      JobLookup
	validator *validator.Validate
	logger    *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, jobs JobLookup, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, jobs: jobs, validator: shared.NewValidator(), logger: logger}
}

// Apply records principal's application to jobID. Applying twice is a conflict.
func (s *Service) Apply(ctx context.Context, principal shared.Principal, jobID string) (Application, error) {
	if _, err := s.jobs.Get(ctx, jobID); err != nil {
		return Application{}, err
	}
	app, err := s.repo.Create(ctx, Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: principal.UserID,
		Status:      StatusPending,
	})
	if err != nil {
		return Application{}, err
	}
	s.logger.Info("application submitted", slog.String("application_id", app.ID), slog.String("job_id", jobID))
	return app, nil
}

// ListMine returns principal's applications, newest first.
func (s *Service) ListMine(ctx context.Context, principal shared.Principal) ([]Application, error) {
	return s.repo.ListByApplicant(ctx, principal.UserID)
}

// Applicants returns the applications to a job created by principal.
func (s *Service) Applicants(ctx context.Context, principal shared.Principal, jobID string) ([]Application, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := rbac.RequireOwner(principal, job.CreatedBy); err != nil {
		return nil, err
	}
	return s.repo.ListByJob(ctx, jobID)
}

// UpdateStatus reviews an application to a job created by principal.
func (s *Service) UpdateStatus(ctx context.Context, principal shared.Principal, id string, form StatusForm) (Application, error) {
	form.Status = strings.ToLower(strings.TrimSpace(form.Status))
	if err := shared.ValidateStruct(s.validator, form); err != nil {
		return Application{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return Application{}, shared.NotFoundError("application")
	}
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	job, err := s.jobs.Get(ctx, app.JobID)
	if err != nil {
		return Application{}, err
	}
	if err := rbac.RequireOwner(principal, job.CreatedBy); err != nil {
		return Application{}, err
	}
	return s.repo.UpdateStatus(ctx, id, Status(form.Status))
}
