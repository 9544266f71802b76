package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftapp/staff-service/internal/domain"
)

// JobRepository reads scheduled jobs for the calendar.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository constructs repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (code, client_name, address, team, status, start_at, end_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		job.Code,
		job.ClientName,
		job.Address,
		nullIfEmpty(job.Team),
		job.Status,
		job.StartAt,
		job.EndAt,
	).Scan(&job.ID)
}

// ListStartingBetween returns jobs with from <= start_at < to, earliest first.
func (r *jobRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Job, error) {
	const query = `
        SELECT id, code, client_name, address, COALESCE(team, ''), status, start_at, end_at
        FROM jobs WHERE start_at >= $1 AND start_at < $2
        ORDER BY start_at ASC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(&job.ID, &job.Code, &job.ClientName, &job.Address, &job.Team, &job.Status, &job.StartAt, &job.EndAt); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
