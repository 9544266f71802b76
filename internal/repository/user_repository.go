package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftapp/staff-service/internal/domain"
)

// UserRepository stores app login accounts. Emails match case-insensitively.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

const userColumns = `
        id, name, email, password_hash, role, active_flag, last_login_at, created_at, updated_at`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns the Postgres implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.pool.QueryRow(ctx, `
        INSERT INTO users (name, email, password_hash, role, active_flag)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Active,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.pool.QueryRow(ctx, `
        UPDATE users
        SET name=$2, email=$3, password_hash=$4, role=$5, active_flag=$6, updated_at=NOW()
        WHERE id=$1
        RETURNING updated_at`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Active,
	).Scan(&user.UpdatedAt)
}

func (r *userRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at=$2 WHERE id=$1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE lower(email)=lower($1)`, email))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
