package auth

import (
	"context"
	"strings"

	"github.com/hireboard/hireboard/internal/platform/db"
	"github.com/hireboard/hireboard/internal/shared"
)

// Repository defines persistence operations for auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool db.Querier) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches the credentials of the user registered with email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT id, email, password_hash, role FROM users WHERE email = $1`
	var (
		user User
		role string
	)
	err := r.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &role)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, shared.NotFoundError("user")
		}
		return nil, shared.RepositoryError("auth: find user by email", err)
	}
	user.Role = shared.Role(role)
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
