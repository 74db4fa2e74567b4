package applications

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hireboard/hireboard/internal/platform/db"
	"github.com/hireboard/hireboard/internal/shared"
)

// Repository defines application persistence.
type Repository interface {
	Create(ctx context.Context, app Application) (Application, error)
	Get(ctx context.Context, id string) (Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Application, error)
}

type repository struct {
	pool db.Querier
}

// NewRepository constructs a PostgreSQL backed Repository.
func NewRepository(pool db.Querier) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, app Application) (Application, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO applications (id, job_id, applicant_id, status)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at`, app.ID, app.JobID, app.ApplicantID, string(app.Status)).
		Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err, "uq_applications_job_applicant"):
			return Application{}, shared.ConflictError("you have already applied for this job")
		case db.IsForeignKeyViolation(err):
			return Application{}, shared.NotFoundError("job")
		default:
			return Application{}, shared.RepositoryError("applications: create", err)
		}
	}
	return app, nil
}

func (r *repository) Get(ctx context.Context, id string) (Application, error) {
	var (
		app    Application
		status string
	)
	err := r.pool.QueryRow(ctx, `SELECT id, job_id, applicant_id, status, created_at, updated_at
FROM applications WHERE id = $1`, id).
		Scan(&app.ID, &app.JobID, &app.ApplicantID, &status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return Application{}, shared.NotFoundError("application")
		}
		return Application{}, shared.RepositoryError("applications: get", err)
	}
	app.Status = Status(status)
	return app, nil
}

func (r *repository) ListByApplicant(ctx context.Context, applicantID string) ([]Application, error) {
	rows, err := r.pool.Query(ctx, `SELECT a.id, a.job_id, a.applicant_id, a.status, a.created_at, a.updated_at,
       j.title, COALESCE(c.name, '')
FROM applications a
JOIN jobs j ON j.id = a.job_id
LEFT JOIN companies c ON c.id = j.company_id
WHERE a.applicant_id = $1
ORDER BY a.created_at DESC`, applicantID)
	if err != nil {
		return nil, shared.RepositoryError("applications: list by applicant", err)
	}
	return collect(rows, func(row pgx.Rows, app *Application) error {
		job := &JobSummary{}
		var status string
		if err := row.Scan(&app.ID, &app.JobID, &app.ApplicantID, &status, &app.CreatedAt, &app.UpdatedAt,
			&job.Title, &job.CompanyName); err != nil {
			return err
		}
		job.ID = app.JobID
		app.Status = Status(status)
		app.Job = job
		return nil
	})
}

func (r *repository) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	rows, err := r.pool.Query(ctx, `SELECT a.id, a.job_id, a.applicant_id, a.status, a.created_at, a.updated_at,
       u.fullname, u.email, u.phone_number
FROM applications a
JOIN users u ON u.id = a.applicant_id
WHERE a.job_id = $1
ORDER BY a.created_at DESC`, jobID)
	if err != nil {
		return nil, shared.RepositoryError("applications: list by job", err)
	}
	return collect(rows, func(row pgx.Rows, app *Application) error {
		applicant := &Applicant{}
		var status string
		if err := row.Scan(&app.ID, &app.JobID, &app.ApplicantID, &status, &app.CreatedAt, &app.UpdatedAt,
			&applicant.Fullname, &applicant.Email, &applicant.PhoneNumber); err != nil {
			return err
		}
		applicant.ID = app.ApplicantID
		app.Status = Status(status)
		app.Applicant = applicant
		return nil
	})
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (Application, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return Application{}, shared.RepositoryError("applications: update status", err)
	}
	if tag.RowsAffected() == 0 {
		return Application{}, shared.NotFoundError("application")
	}
	return r.Get(ctx, id)
}

func collect(rows pgx.Rows, scan func(pgx.Rows, *Application) error) ([]Application, error) {
	defer rows.Close()
	apps := []Application{}
	for rows.Next() {
		var app Application
		if err := scan(rows, &app); err != nil {
			return nil, shared.RepositoryError("applications: scan", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.RepositoryError("applications: rows", err)
	}
	return apps, nil
}
