package companies

import (
	"context"

	"github.com/hireboard/hireboard/internal/platform/db"
	"github.com/hireboard/hireboard/internal/shared"
)

const companyColumns = `id, user_id, name, description, website, location, logo, created_at, updated_at`

// Repository defines company persistence.
type Repository interface {
	Create(ctx context.Context, company Company) (Company, error)
	Get(ctx context.Context, id string) (Company, error)
	ListByOwner(ctx context.Context, userID string) ([]Company, error)
	Update(ctx context.Context, company Company) (Company, error)
}

type repository struct {
	pool db.Querier
}

// NewRepository constructs a PostgreSQL backed Repository.
func NewRepository(pool db.Querier) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, company Company) (Company, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO companies (id, user_id, name)
VALUES ($1, $2, $3)
RETURNING `+companyColumns, company.ID, company.UserID, company.Name)
	created, err := scanCompany(row)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_companies_name") {
			return Company{}, shared.ConflictError("company already exists")
		}
		return Company{}, shared.RepositoryError("companies: create", err)
	}
	return created, nil
}

func (r *repository) Get(ctx context.Context, id string) (Company, error) {
	company, err := scanCompany(r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return Company{}, shared.NotFoundError("company")
		}
		return Company{}, shared.RepositoryError("companies: get", err)
	}
	return company, nil
}

func (r *repository) ListByOwner(ctx context.Context, userID string) ([]Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, shared.RepositoryError("companies: list", err)
	}
	defer rows.Close()

	companies := []Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, shared.RepositoryError("companies: scan", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.RepositoryError("companies: list", err)
	}
	return companies, nil
}

func (r *repository) Update(ctx context.Context, company Company) (Company, error) {
	row := r.pool.QueryRow(ctx, `UPDATE companies
SET name = $2, description = $3, website = $4, location = $5, logo = $6, updated_at = NOW()
WHERE id = $1
RETURNING `+companyColumns,
		company.ID, company.Name, company.Description, company.Website, company.Location, company.Logo)
	updated, err := scanCompany(row)
	if err != nil {
		switch {
		case db.IsNoRows(err):
			return Company{}, shared.NotFoundError("company")
		case db.IsUniqueViolation(err, "uq_companies_name"):
			return Company{}, shared.ConflictError("company name already taken")
		default:
			return Company{}, shared.RepositoryError("companies: update", err)
		}
	}
	return updated, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Website, &c.Location, &c.Logo, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
