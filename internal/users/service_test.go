package users

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireboard/hireboard/internal/saved"
	"github.com/hireboard/hireboard/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	mu     sync.Mutex
	users  map[string]User
	emails map[string]string
	getErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]User), emails: make(map[string]string)}
}

func (m *mockRepository) Create(ctx context.Context, in NewUser) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.emails[in.Email]; taken {
		return User{}, shared.ConflictError("user already exists with this email")
	}
	now := time.Now()
	user := User{
		ID: in.ID, Fullname: in.Fullname, Email: in.Email, PhoneNumber: in.PhoneNumber,
		Role: in.Role, Profile: in.Profile, CreatedAt: now, UpdatedAt: now,
	}
	m.users[in.ID] = user
	m.emails[in.Email] = in.ID
	return user, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (User, error) {
	if m.getErr != nil {
		return User{}, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return User{}, shared.NotFoundError("user")
	}
	return user, nil
}

func (m *mockRepository) Update(ctx context.Context, user User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return User{}, shared.NotFoundError("user")
	}
	m.users[user.ID] = user
	return user, nil
}

type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

type stubLister struct {
	jobs []saved.SavedJob
	err  error
}

func (s stubLister) List(ctx context.Context, userID string) ([]saved.SavedJob, error) {
	return s.jobs, s.err
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Fullname:    "Ada Lovelace",
		Email:       "Ada@Example.com",
		PhoneNumber: "08123456789",
		Password:    "secret123",
		Role:        "candidate",
	}
}

// ============================================================================
// TESTS
// ============================================================================

func TestRegister(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{}, stubLister{}, nil)

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, shared.RoleCandidate, user.Role)
	assert.Equal(t, DefaultProfilePhoto, user.Profile.ProfilePhoto)
	assert.NotNil(t, user.Profile.Skills)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{}, stubLister{}, nil)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	again := validRegistration()
	again.Email = "ADA@example.com"
	_, err = svc.Register(context.Background(), again)
	require.ErrorIs(t, err, shared.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMockRepository(), plainHasher{}, stubLister{}, nil)

	in := validRegistration()
	in.Fullname = ""
	in.Role = "admin"
	_, err := svc.Register(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrValidation)

	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "fullname")
	assert.Contains(t, verr.Fields, "role")
}

func TestMeIncludesSavedJobs(t *testing.T) {
	repo := newMockRepository()
	jobs := []saved.SavedJob{{JobID: "job-1", Title: "Go Developer"}}
	svc := NewService(repo, plainHasher{}, stubLister{jobs: jobs}, nil)

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, jobs, me.SavedJobs)
}

func TestMeFailsWithoutFabricatingProfile(t *testing.T) {
	repo := newMockRepository()
	repo.getErr = shared.RepositoryError("users: get", errors.New("timeout"))
	svc := NewService(repo, plainHasher{}, stubLister{jobs: []saved.SavedJob{}}, nil)

	me, err := svc.Me(context.Background(), "anyone")
	require.ErrorIs(t, err, shared.ErrRepository)
	assert.Empty(t, me.ID)
}

func TestUpdateProfile(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{}, stubLister{}, nil)
	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	var in ProfileUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"bio":"Engineer","skills":"Go, go ,SQL,,Redis"}`), &in))

	updated, err := svc.UpdateProfile(context.Background(), user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", updated.Profile.Bio)
	assert.Equal(t, []string{"Go", "SQL", "Redis"}, updated.Profile.Skills)
	assert.Equal(t, user.Fullname, updated.Fullname, "empty fields stay untouched")
	assert.Equal(t, DefaultProfilePhoto, updated.Profile.ProfilePhoto)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewService(newMockRepository(), plainHasher{}, stubLister{}, nil)
	_, err := svc.UpdateProfile(context.Background(), "missing", ProfileUpdate{Bio: "x"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSkillListAcceptsArrayOrString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "array", raw: `["Go","Kubernetes"]`, want: []string{"Go", "Kubernetes"}},
		{name: "comma string", raw: `"Go, Kubernetes"`, want: []string{"Go", "Kubernetes"}},
		{name: "case-insensitive dedupe", raw: `["Go","GO"," go "]`, want: []string{"Go"}},
		{name: "empty string", raw: `""`, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var skills SkillList
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &skills))
			assert.Equal(t, tt.want, []string(skills))
		})
	}

	var skills SkillList
	assert.Error(t, json.Unmarshal([]byte(`42`), &skills))
}
