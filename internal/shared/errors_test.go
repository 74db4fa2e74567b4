package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("register: %w", NewValidationError(map[string]string{
		"password": "must be at least 6",
		"email":    "is required",
	}))

	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "validation failed: email: is required; password: must be at least 6", verr.Error())
}

func TestRepositoryErrorKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := RepositoryError("saved.add", cause)

	require.ErrorIs(t, err, ErrRepository)
	require.ErrorIs(t, err, cause)
	require.Nil(t, RepositoryError("noop", nil))
}

func TestUserSafeMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not found", NotFoundError("job"), "job not found"},
		{"conflict", ConflictError("email already registered"), "conflict: email already registered"},
		{"repository", RepositoryError("jobs.list", errors.New("pq: secret table")), "internal error, please retry"},
		{"unknown", errors.New("boom"), "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, UserSafeMessage(tc.err))
		})
	}
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("  Recruiter ")
	require.True(t, ok)
	require.Equal(t, RoleRecruiter, role)

	_, ok = ParseRole("admin")
	require.False(t, ok)
	require.False(t, Role("").Valid())
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(t.Context())
	require.False(t, ok)

	ctx := ContextWithPrincipal(t.Context(), Principal{UserID: "u1", Role: RoleCandidate})
	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "u1", p.UserID)

	_, ok = PrincipalFromContext(ContextWithPrincipal(t.Context(), Principal{}))
	require.False(t, ok)
}
