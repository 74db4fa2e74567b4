package saved

import (
	"context"
	"time"

	"github.com/hireboard/hireboard/internal/platform/db"
	"github.com/hireboard/hireboard/internal/shared"
)

// PGRepository stores saved jobs in the user_saved_jobs table.
type PGRepository struct {
	pool db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool db.Querier) *PGRepository {
	return &PGRepository{pool: pool}
}

// JobExists reports whether jobID refers to a live job.
func (r *PGRepository) JobExists(ctx context.Context, jobID string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, jobID).Scan(&exists); err != nil {
		return false, shared.RepositoryError("saved: job exists", err)
	}
	return exists, nil
}

// Add inserts the pair unless it is already present.
func (r *PGRepository) Add(ctx context.Context, userID, jobID string, at time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `INSERT INTO user_saved_jobs (user_id, job_id, saved_at) VALUES ($1, $2, $3)
ON CONFLICT (user_id, job_id) DO NOTHING`, userID, jobID, at)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return false, shared.NotFoundError("user")
		}
		return false, shared.RepositoryError("saved: insert", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Remove deletes the pair if present.
func (r *PGRepository) Remove(ctx context.Context, userID, jobID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return false, shared.RepositoryError("saved: delete", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Refs returns the saved references of userID, newest first.
func (r *PGRepository) Refs(ctx context.Context, userID string) ([]Ref, error) {
	rows, err := r.pool.Query(ctx, `SELECT job_id, saved_at FROM user_saved_jobs WHERE user_id = $1
ORDER BY saved_at DESC, job_id`, userID)
	if err != nil {
		return nil, shared.RepositoryError("saved: refs", err)
	}
	defer rows.Close()

	refs := make([]Ref, 0)
	for rows.Next() {
		var ref Ref
		if err := rows.Scan(&ref.JobID, &ref.SavedAt); err != nil {
			return nil, shared.RepositoryError("saved: scan ref", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.RepositoryError("saved: refs rows", err)
	}
	return refs, nil
}

// Resolve loads the live jobs among jobIDs with their company projection.
func (r *PGRepository) Resolve(ctx context.Context, jobIDs []string) (map[string]SavedJob, error) {
	const query = `SELECT j.id, j.title, j.description, j.location, j.job_type, j.salary, j.position,
       j.experience_level, j.created_at, j.company_id, COALESCE(c.name, ''), COALESCE(c.logo, '')
FROM jobs j
LEFT JOIN companies c ON c.id = j.company_id
WHERE j.id = ANY($1::uuid[])`
	rows, err := r.pool.Query(ctx, query, jobIDs)
	if err != nil {
		return nil, shared.RepositoryError("saved: resolve", err)
	}
	defer rows.Close()

	jobs := make(map[string]SavedJob, len(jobIDs))
	for rows.Next() {
		var job SavedJob
		if err := rows.Scan(
			&job.JobID, &job.Title, &job.Description, &job.Location, &job.JobType, &job.Salary, &job.Position,
			&job.ExperienceLevel, &job.CreatedAt, &job.Company.ID, &job.Company.Name, &job.Company.Logo,
		); err != nil {
			return nil, shared.RepositoryError("saved: scan job", err)
		}
		jobs[job.JobID] = job
	}
	if err := rows.Err(); err != nil {
		return nil, shared.RepositoryError("saved: resolve rows", err)
	}
	return jobs, nil
}

var _ Repository = (*PGRepository)(nil)
