package jobs

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hireboard/hireboard/internal/platform/db"
	"github.com/hireboard/hireboard/internal/shared"
)

const jobSelect = `SELECT j.id, j.title, j.description, j.requirements, j.salary, j.location, j.job_type,
       j.experience_level, j.position, j.created_by, j.created_at, j.updated_at,
       j.company_id, COALESCE(c.name, ''), COALESCE(c.logo, '')
FROM jobs j
LEFT JOIN companies c ON c.id = j.company_id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository defines job persistence.
type Repository interface {
	// Create inserts job after checking that job.CreatedBy owns job.Company.ID.
	Create(ctx context.Context, job Job) (Job, error)
	List(ctx context.Context, filter ListFilter) ([]Job, int, error)
	ListByCreator(ctx context.Context, userID string) ([]Job, error)
	Get(ctx context.Context, id string) (Job, error)
	Update(ctx context.Context, job Job) (Job, error)
}

type repository struct {
	pool db.Pool
}

// NewRepository constructs a PostgreSQL backed Repository.
func NewRepository(pool db.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, job Job) (Job, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var owner string
		err := tx.QueryRow(ctx, `SELECT user_id, name, logo FROM companies WHERE id = $1 FOR SHARE`, job.Company.ID).
			Scan(&owner, &job.Company.Name, &job.Company.Logo)
		if err != nil {
			if db.IsNoRows(err) {
				return shared.NotFoundError("company")
			}
			return shared.RepositoryError("jobs: load company", err)
		}
		if owner != job.CreatedBy {
			return shared.ErrForbidden
		}
		err = tx.QueryRow(ctx, `INSERT INTO jobs (id, company_id, created_by, title, description, requirements,
    salary, location, job_type, experience_level, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING created_at, updated_at`,
			job.ID, job.Company.ID, job.CreatedBy, job.Title, job.Description, job.Requirements,
			job.Salary, job.Location, job.JobType, job.ExperienceLevel, job.Position,
		).Scan(&job.CreatedAt, &job.UpdatedAt)
		if err != nil {
			return shared.RepositoryError("jobs: insert", err)
		}
		return nil
	})
	if err != nil {
		return Job{}, err
	}
	return job, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Job, int, error) {
	keyword := likeEscaper.Replace(strings.TrimSpace(filter.Keyword))
	const where = ` WHERE ($1 = '' OR j.title ILIKE '%' || $1 || '%' OR j.description ILIKE '%' || $1 || '%')`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs j`+where, keyword).Scan(&total); err != nil {
		return nil, 0, shared.RepositoryError("jobs: count", err)
	}
	rows, err := r.pool.Query(ctx, jobSelect+where+`
ORDER BY j.created_at DESC, j.id
LIMIT $2 OFFSET $3`, keyword, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, shared.RepositoryError("jobs: list", err)
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *repository) ListByCreator(ctx context.Context, userID string) ([]Job, error) {
	rows, err := r.pool.Query(ctx, jobSelect+`
WHERE j.created_by = $1
ORDER BY j.created_at DESC, j.id`, userID)
	if err != nil {
		return nil, shared.RepositoryError("jobs: list by creator", err)
	}
	return collectJobs(rows)
}

func (r *repository) Get(ctx context.Context, id string) (Job, error) {
	job, err := scanJob(r.pool.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return Job{}, shared.NotFoundError("job")
		}
		return Job{}, shared.RepositoryError("jobs: get", err)
	}
	return job, nil
}

func (r *repository) Update(ctx context.Context, job Job) (Job, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE jobs
SET title = $2, description = $3, requirements = $4, salary = $5, location = $6,
    job_type = $7, experience_level = $8, position = $9, updated_at = NOW()
WHERE id = $1`,
		job.ID, job.Title, job.Description, job.Requirements, job.Salary, job.Location,
		job.JobType, job.ExperienceLevel, job.Position)
	if err != nil {
		return Job{}, shared.RepositoryError("jobs: update", err)
	}
	if tag.RowsAffected() == 0 {
		return Job{}, shared.NotFoundError("job")
	}
	return r.Get(ctx, job.ID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Salary, &j.Location, &j.JobType,
		&j.ExperienceLevel, &j.Position, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt,
		&j.Company.ID, &j.Company.Name, &j.Company.Logo)
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	return j, err
}

func collectJobs(rows pgx.Rows) ([]Job, error) {
	defer rows.Close()
	jobs := []Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, shared.RepositoryError("jobs: scan", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.RepositoryError("jobs: rows", err)
	}
	return jobs, nil
}
