package saved

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hireboard/hireboard/internal/shared"
)

// Repository is the storage contract of the saved-jobs set. Add and Remove
// must be single atomic statements at the storage layer.
type Repository interface {
	JobExists(ctx context.Context, jobID string) (bool, error)
	// Add inserts (userID, jobID) unless present and reports whether a row was added.
	Add(ctx context.Context, userID, jobID string, at time.Time) (bool, error)
	// Remove deletes (userID, jobID) if present and reports whether a row was removed.
	Remove(ctx context.Context, userID, jobID string) (bool, error)
	// Refs returns the user's saved references, newest save first.
	Refs(ctx context.Context, userID string) ([]Ref, error)
	// Resolve loads the live jobs among jobIDs keyed by id. Missing ids are absent from the map.
	Resolve(ctx context.Context, jobIDs []string) (map[string]SavedJob, error)
}

// Observer receives one event per save/unsave call.
type Observer interface {
	SavedJobOperation(op, outcome string)
}

// Manager is the single entry point for saving and unsaving jobs.
type Manager struct {
	repo     Repository
	observer Observer
	now      func() time.Time
}

// NewManager constructs a Manager. observer may be nil.
func NewManager(repo Repository, observer Observer) *Manager {
	return &Manager{repo: repo, observer: observer, now: time.Now}
}

// Save adds jobID to the user's saved set. Saving an already saved job
// succeeds with added=false.
func (m *Manager) Save(ctx context.Context, userID, jobID string) (bool, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		m.observe("save", OutcomeNotFound)
		return false, ErrJobNotFound
	}
	exists, err := m.repo.JobExists(ctx, jobID)
	if err != nil {
		m.observe("save", OutcomeError)
		return false, repositoryFailure("saved: check job", err)
	}
	if !exists {
		m.observe("save", OutcomeNotFound)
		return false, ErrJobNotFound
	}
	added, err := m.repo.Add(ctx, userID, jobID, m.now().UTC())
	if err != nil {
		m.observe("save", OutcomeError)
		return false, repositoryFailure("saved: add", err)
	}
	if added {
		m.observe("save", OutcomeAdded)
	} else {
		m.observe("save", OutcomeNoop)
	}
	return added, nil
}

// Unsave removes jobID from the user's saved set. Removing an absent job
// succeeds with removed=false.
func (m *Manager) Unsave(ctx context.Context, userID, jobID string) (bool, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		m.observe("unsave", OutcomeNoop)
		return false, nil
	}
	removed, err := m.repo.Remove(ctx, userID, jobID)
	if err != nil {
		m.observe("unsave", OutcomeError)
		return false, repositoryFailure("saved: remove", err)
	}
	if removed {
		m.observe("unsave", OutcomeRemoved)
	} else {
		m.observe("unsave", OutcomeNoop)
	}
	return removed, nil
}

// List returns the user's saved jobs, newest save first. References to jobs
// that no longer exist are omitted rather than failing the call.
func (m *Manager) List(ctx context.Context, userID string) ([]SavedJob, error) {
	refs, err := m.repo.Refs(ctx, userID)
	if err != nil {
		return nil, repositoryFailure("saved: refs", err)
	}
	jobs := make([]SavedJob, 0, len(refs))
	if len(refs) == 0 {
		return jobs, nil
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.JobID)
	}
	live, err := m.repo.Resolve(ctx, ids)
	if err != nil {
		return nil, repositoryFailure("saved: resolve", err)
	}
	for _, ref := range refs {
		job, ok := live[ref.JobID]
		if !ok {
			m.observe("list", OutcomeDangling)
			continue
		}
		job.SavedAt = ref.SavedAt
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (m *Manager) observe(op, outcome string) {
	if m.observer != nil {
		m.observer.SavedJobOperation(op, outcome)
	}
}

// repositoryFailure keeps domain errors (e.g. a missing user) intact and marks
// everything else as a transient repository failure.
func repositoryFailure(op string, err error) error {
	switch {
	case errors.Is(err, shared.ErrRepository), errors.Is(err, shared.ErrNotFound):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return shared.RepositoryError(op, err)
	}
}
