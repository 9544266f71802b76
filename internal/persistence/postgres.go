// Package persistence opens the external stores the service can run against.
// Both are optional: a zero Postgres or Redis reports Enabled() == false and
// the service falls back to in-memory implementations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/config"
)

// ErrNotConfigured is returned by Ping on a store that was never opened.
var ErrNotConfigured = errors.New("not configured")

const connectTimeout = 10 * time.Second

// Postgres holds the pool behind the SQL repositories.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres opens and pings a pool. An empty DSN returns a disabled Postgres.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN empty, roster kept in memory")
		return &Postgres{}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse POSTGRES_DSN: %w", err)
	}
	tunePool(poolCfg, cfg)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("postgres ready",
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return &Postgres{pool: pool}, nil
}

func tunePool(poolCfg *pgxpool.Config, cfg config.PostgresConfig) {
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}
}

// Pool returns the pgx pool, or nil when disabled.
func (p *Postgres) Pool() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.pool
}

// Enabled reports whether a pool is open.
func (p *Postgres) Enabled() bool { return p.Pool() != nil }

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	if !p.Enabled() {
		return fmt.Errorf("postgres: %w", ErrNotConfigured)
	}
	return p.pool.Ping(ctx)
}

// Close releases the pool.
func (p *Postgres) Close() {
	if p.Enabled() {
		p.pool.Close()
	}
}
