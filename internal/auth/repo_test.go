package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireboard/hireboard/internal/shared"
)

func TestPGRepositoryFindByEmail(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, email, password_hash, role FROM users`).
					WithArgs("ada@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "role"}).
						AddRow("user-1", "ada@example.com", "$2a$hash", "recruiter"))
			},
		},
		{
			name: "unknown",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, email, password_hash, role FROM users`).
					WithArgs("ada@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: shared.ErrNotFound,
		},
		{
			name: "unavailable",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, email, password_hash, role FROM users`).
					WithArgs("ada@example.com").
					WillReturnError(errors.New("too many connections"))
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

			user, err := NewRepository(mock).FindByEmail(context.Background(), " Ada@Example.com ")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, shared.RoleRecruiter, user.Role)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
