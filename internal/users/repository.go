package users

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hireboard/hireboard/internal/platform/db"
	"github.com/hireboard/hireboard/internal/shared"
)

const userColumns = `id, fullname, email, phone_number, role, profile, created_at, updated_at`

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool db.Querier
}

// NewRepository constructs a repository.
func NewRepository(pool db.Querier) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new account. A taken email is reported as a conflict.
func (r *Repository) Create(ctx context.Context, in NewUser) (User, error) {
	profile, err := json.Marshal(in.Profile)
	if err != nil {
		return User{}, fmt.Errorf("encode profile: %w", err)
	}
	row := r.pool.QueryRow(ctx, `INSERT INTO users (id, fullname, email, phone_number, password_hash, role, profile)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+userColumns,
		in.ID, in.Fullname, strings.ToLower(in.Email), in.PhoneNumber, in.PasswordHash, string(in.Role), profile)
	user, err := scanUser(row)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_users_email") {
			return User{}, shared.ConflictError("user already exists with this email")
		}
		return User{}, shared.RepositoryError("users: create", err)
	}
	return user, nil
}

// Get loads a user by id.
func (r *Repository) Get(ctx context.Context, id string) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if db.IsNoRows(err) {
			return User{}, shared.NotFoundError("user")
		}
		return User{}, shared.RepositoryError("users: get", err)
	}
	return user, nil
}

// Update persists the mutable fields of user.
func (r *Repository) Update(ctx context.Context, user User) (User, error) {
	profile, err := json.Marshal(user.Profile)
	if err != nil {
		return User{}, fmt.Errorf("encode profile: %w", err)
	}
	row := r.pool.QueryRow(ctx, `UPDATE users
SET fullname = $2, email = $3, phone_number = $4, profile = $5, updated_at = NOW()
WHERE id = $1
RETURNING `+userColumns,
		user.ID, user.Fullname, strings.ToLower(user.Email), user.PhoneNumber, profile)
	updated, err := scanUser(row)
	if err != nil {
		switch {
		case db.IsNoRows(err):
			return User{}, shared.NotFoundError("user")
		case db.IsUniqueViolation(err, "uq_users_email"):
			return User{}, shared.ConflictError("email already in use")
		default:
			return User{}, shared.RepositoryError("users: update", err)
		}
	}
	return updated, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user    User
		role    string
		profile []byte
	)
	if err := row.Scan(&user.ID, &user.Fullname, &user.Email, &user.PhoneNumber, &role, &profile, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return User{}, err
	}
	user.Role = shared.Role(role)
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &user.Profile); err != nil {
			return User{}, fmt.Errorf("decode profile: %w", err)
		}
	}
	if user.Profile.Skills == nil {
		user.Profile.Skills = []string{}
	}
	return user, nil
}
