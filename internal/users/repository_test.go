package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireboard/hireboard/internal/shared"
)

var userRowColumns = []string{"id", "fullname", "email", "phone_number", "role", "profile", "created_at", "updated_at"}

func TestRepositoryCreate(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	in := NewUser{
		ID: "3d0f5c1e-7a2b-4c8d-9e0f-112233445566", Fullname: "Ada", Email: "Ada@Example.com",
		PhoneNumber: "0812", PasswordHash: "hash", Role: shared.RoleRecruiter,
		Profile: Profile{ProfilePhoto: DefaultProfilePhoto},
	}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "inserted",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(in.ID, in.Fullname, "ada@example.com", in.PhoneNumber, in.PasswordHash, "recruiter", pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows(userRowColumns).
						AddRow(in.ID, in.Fullname, "ada@example.com", in.PhoneNumber, "recruiter",
							[]byte(`{"bio":"","skills":null,"profilePhoto":"p.png"}`), now, now))
			},
		},
		{
			name: "duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(in.ID, in.Fullname, "ada@example.com", in.PhoneNumber, in.PasswordHash, "recruiter", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"})
			},
			wantErr: shared.ErrConflict,
		},
		{
			name: "database down",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(in.ID, in.Fullname, "ada@example.com", in.PhoneNumber, in.PasswordHash, "recruiter", pgxmock.AnyArg()).
					WillReturnError(errors.New("dial tcp: connection refused"))
			},
			wantErr: shared.ErrRepository,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setupMock(mock)

			user, err := NewRepository(mock).Create(context.Background(), in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, shared.RoleRecruiter, user.Role)
				assert.Equal(t, "p.png", user.Profile.ProfilePhoto)
				assert.Equal(t, []string{}, user.Profile.Skills)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepositoryGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, fullname, email`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = NewRepository(mock).Get(context.Background(), "missing")
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
