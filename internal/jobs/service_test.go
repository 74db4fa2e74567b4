package jobs

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireboard/hireboard/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	mu        sync.Mutex
	jobs      map[string]Job
	companies map[string]string // company id -> owner id
	clock     time.Time
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		jobs:      make(map[string]Job),
		companies: make(map[string]string),
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *mockRepository) Create(ctx context.Context, job Job) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owner, ok := m.companies[job.Company.ID]
	if !ok {
		return Job{}, shared.NotFoundError("company")
	}
	if owner != job.CreatedBy {
		return Job{}, shared.ErrForbidden
	}
	m.clock = m.clock.Add(time.Minute)
	job.CreatedAt, job.UpdatedAt = m.clock, m.clock
	m.jobs[job.ID] = job
	return job, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Job, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kw := strings.ToLower(filter.Keyword)
	var out []Job
	for _, j := range m.jobs {
		if kw == "" || strings.Contains(strings.ToLower(j.Title), kw) || strings.Contains(strings.ToLower(j.Description), kw) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	total := len(out)
	if filter.Offset >= len(out) {
		return []Job{}, total, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (m *mockRepository) ListByCreator(ctx context.Context, userID string) ([]Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Job{}
	for _, j := range m.jobs {
		if j.CreatedBy == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return Job{}, shared.NotFoundError("job")
	}
	return j, nil
}

func (m *mockRepository) Update(ctx context.Context, job Job) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[job.ID]; !ok {
		return Job{}, shared.NotFoundError("job")
	}
	m.jobs[job.ID] = job
	return job, nil
}

var recruiter = shared.Principal{UserID: "rec-1", Role: shared.RoleRecruiter}

func validForm(companyID string) CreateForm {
	return CreateForm{
		Title:        "Backend Engineer",
		Description:  "Build Go services",
		Requirements: "Go, PostgreSQL , ,Redis",
		Salary:       150000,
		Location:     "Remote",
		JobType:      "Full Time",
		Experience:   3,
		Position:     2,
		CompanyID:    companyID,
	}
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateJob(t *testing.T) {
	repo := newMockRepository()
	companyID := uuid.NewString()
	repo.companies[companyID] = recruiter.UserID
	svc := NewService(repo, nil)

	job, err := svc.Create(context.Background(), recruiter, validForm(companyID))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Redis"}, job.Requirements)
	assert.Equal(t, recruiter.UserID, job.CreatedBy)
	assert.Equal(t, int64(150000), job.Salary)
}

func TestCreateJobRejections(t *testing.T) {
	repo := newMockRepository()
	owned := uuid.NewString()
	foreign := uuid.NewString()
	repo.companies[owned] = recruiter.UserID
	repo.companies[foreign] = "someone-else"
	svc := NewService(repo, nil)

	missing := validForm(owned)
	missing.Title = ""
	missing.Salary = 0
	_, err := svc.Create(context.Background(), recruiter, missing)
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "salary")

	_, err = svc.Create(context.Background(), recruiter, validForm(foreign))
	require.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.Create(context.Background(), recruiter, validForm(uuid.NewString()))
	require.ErrorIs(t, err, shared.ErrNotFound)

	blank := validForm(owned)
	blank.Requirements = " , "
	_, err = svc.Create(context.Background(), recruiter, blank)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestListJobsKeywordAndPaging(t *testing.T) {
	repo := newMockRepository()
	companyID := uuid.NewString()
	repo.companies[companyID] = recruiter.UserID
	svc := NewService(repo, nil)

	for _, title := range []string{"Go Developer", "Java Developer", "Golang SRE"} {
		form := validForm(companyID)
		form.Title = title
		form.Description = "role"
		_, err := svc.Create(context.Background(), recruiter, form)
		require.NoError(t, err)
	}

	jobs, page, err := svc.List(context.Background(), "go", shared.PageRequest{Page: 1, PerPage: 1})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Golang SRE", jobs[0].Title, "newest first")
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestUpdateJobOwnership(t *testing.T) {
	repo := newMockRepository()
	companyID := uuid.NewString()
	repo.companies[companyID] = recruiter.UserID
	svc := NewService(repo, nil)
	job, err := svc.Create(context.Background(), recruiter, validForm(companyID))
	require.NoError(t, err)

	other := shared.Principal{UserID: "rec-2", Role: shared.RoleRecruiter}
	_, err = svc.Update(context.Background(), other, job.ID, UpdateForm{Title: "Hijacked"})
	require.ErrorIs(t, err, shared.ErrForbidden)

	updated, err := svc.Update(context.Background(), recruiter, job.ID, UpdateForm{Title: "Staff Engineer", Salary: 200000})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.Equal(t, int64(200000), updated.Salary)
	assert.Equal(t, job.Location, updated.Location)

	_, err = svc.Update(context.Background(), recruiter, "nope", UpdateForm{Title: "x"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestNumberAcceptsStringsAndNumbers(t *testing.T) {
	var form CreateForm
	require.NoError(t, json.Unmarshal([]byte(`{"salary":"120000","experience":2,"position":" 4 "}`), &form))
	assert.Equal(t, Number(120000), form.Salary)
	assert.Equal(t, Number(2), form.Experience)
	assert.Equal(t, Number(4), form.Position)

	assert.Error(t, json.Unmarshal([]byte(`{"salary":"lots"}`), &form))
}
