package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/config"
)

func TestDisabledStores(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	pg, err := NewPostgres(ctx, config.PostgresConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.Nil(t, pg.Pool())
	assert.ErrorIs(t, pg.Ping(ctx), ErrNotConfigured)
	pg.Close()

	r := NewRedis(ctx, config.RedisConfig{}, logger)
	assert.False(t, r.Enabled())
	assert.ErrorIs(t, r.Ping(ctx), ErrNotConfigured)
	r.Close()

	var zero *Postgres
	assert.False(t, zero.Enabled())
}

func TestNewPostgresRejectsBadDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{DSN: "postgres://%zz"}, zap.NewNop())
	assert.ErrorContains(t, err, "parse POSTGRES_DSN")
}

func TestMigrationNamesAreSorted(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_staff.sql", names[0])
	assert.IsNonDecreasing(t, names)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}
