package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftapp/staff-service/internal/domain"
)

// DirectoryRepository manages the platform-wide contractor directory.
type DirectoryRepository interface {
	Create(ctx context.Context, contractor *domain.DirectoryContractor) error
	GetByID(ctx context.Context, id string) (*domain.DirectoryContractor, error)
	GetByABN(ctx context.Context, abn string) (*domain.DirectoryContractor, error)
	Search(ctx context.Context, term string, limit int) ([]domain.DirectoryContractor, error)
}

type directoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository constructs repository.
func NewDirectoryRepository(pool *pgxpool.Pool) DirectoryRepository {
	return &directoryRepository{pool: pool}
}

const directoryColumns = `
        id, first_name, last_name, email, phone, abn, role, rate_type, rate, is_verified, created_at`

func (r *directoryRepository) Create(ctx context.Context, c *domain.DirectoryContractor) error {
	const query = `
        INSERT INTO contractor_directory (first_name, last_name, email, phone, abn, role, rate_type, rate, is_verified)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.ABN,
		c.Role,
		c.RateType,
		c.Rate,
		c.IsVerified,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *directoryRepository) GetByID(ctx context.Context, id string) (*domain.DirectoryContractor, error) {
	rows, err := r.pool.Query(ctx, `SELECT`+directoryColumns+` FROM contractor_directory WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	return firstContractor(rows)
}

func (r *directoryRepository) GetByABN(ctx context.Context, abn string) (*domain.DirectoryContractor, error) {
	const where = ` FROM contractor_directory WHERE replace(abn, ' ', '')=$1`
	rows, err := r.pool.Query(ctx, `SELECT`+directoryColumns+where, domain.StripSpaces(abn))
	if err != nil {
		return nil, err
	}
	return firstContractor(rows)
}

func (r *directoryRepository) Search(ctx context.Context, term string, limit int) ([]domain.DirectoryContractor, error) {
	var (
		query = `SELECT` + directoryColumns + ` FROM contractor_directory`
		arg   string
	)
	if domain.IsABNQuery(term) {
		query += ` WHERE replace(abn, ' ', '')=$1`
		arg = domain.StripSpaces(term)
	} else {
		query += ` WHERE (first_name || ' ' || last_name) ILIKE '%' || $1 || '%'`
		arg = term
	}
	query += ` ORDER BY last_name, first_name LIMIT $2`

	rows, err := r.pool.Query(ctx, query, arg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContractors(rows)
}

func firstContractor(rows pgx.Rows) (*domain.DirectoryContractor, error) {
	defer rows.Close()
	list, err := collectContractors(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &list[0], nil
}

func collectContractors(rows pgx.Rows) ([]domain.DirectoryContractor, error) {
	var result []domain.DirectoryContractor
	for rows.Next() {
		var c domain.DirectoryContractor
		if err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.Phone,
			&c.ABN,
			&c.Role,
			&c.RateType,
			&c.Rate,
			&c.IsVerified,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
