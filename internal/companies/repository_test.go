package companies

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireboard/hireboard/internal/shared"
)

var companyRow = []string{"id", "user_id", "name", "description", "website", "location", "logo", "created_at", "updated_at"}

func TestRepositoryCreateConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO companies`).
		WithArgs("c1", "u1", "Acme").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_companies_name"})

	_, err = NewRepository(mock).Create(context.Background(), Company{ID: "c1", UserID: "u1", Name: "Acme"})
	require.ErrorIs(t, err, shared.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, name`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(companyRow).
			AddRow("c1", "u1", "Acme", "", "", "Jakarta", "", now, now).
			AddRow("c2", "u1", "Globex", "", "", "", "", now, now))

	companies, err := NewRepository(mock).ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Jakarta", companies[0].Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}
