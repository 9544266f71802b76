package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/fixtures"
)

func TestMemoryStaffRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	ds := fixtures.MustLoad()
	repo := NewMemoryStaffRepository(ds.Staff)

	all, err := repo.List(ctx, StaffFilter{})
	require.NoError(t, err)
	require.Len(t, all, len(ds.Staff))
	assert.Equal(t, ds.Staff[0].ID, all[0].ID)

	created := domain.StaffMember{
		Type: domain.StaffTypeEmployee, FirstName: "Test", LastName: "Employee",
		Email: "test@example.com", Status: domain.StaffStatusPending,
		HourlyRate: 30, InvitationStatus: domain.InvitationSent,
	}
	require.NoError(t, repo.Create(ctx, &created))
	assert.NotEmpty(t, created.ID)

	found, err := repo.GetByEmail(ctx, "TEST@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	found.Team = "Team C"
	require.NoError(t, repo.Update(ctx, found))
	team := "Team C"
	inTeam, err := repo.List(ctx, StaffFilter{Team: &team})
	require.NoError(t, err)
	require.Len(t, inTeam, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), pgx.ErrNoRows)
}

func TestMemoryStaffRepositoryFilterAndPage(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStaffRepository(fixtures.MustLoad().Staff)

	contractorType := domain.StaffTypeContractor
	contractors, err := repo.List(ctx, StaffFilter{Type: &contractorType})
	require.NoError(t, err)
	for _, c := range contractors {
		assert.Equal(t, domain.StaffTypeContractor, c.Type)
	}

	page, err := repo.List(ctx, StaffFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	empty, err := repo.List(ctx, StaffFilter{Offset: 100})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStaffRepositoryContractorByABN(t *testing.T) {
	repo := NewMemoryStaffRepository(fixtures.MustLoad().Staff)
	got, err := repo.GetContractorByABN(context.Background(), "12345678901")
	require.NoError(t, err)
	assert.Equal(t, "con_001", got.ID)
}

func TestMemoryStaffRepositoryExpireInvitations(t *testing.T) {
	ctx := context.Background()
	old := time.Now().Add(-10 * 24 * time.Hour)
	fresh := time.Now()
	repo := NewMemoryStaffRepository([]domain.StaffMember{
		{ID: "a", Type: domain.StaffTypeEmployee, InvitationStatus: domain.InvitationSent, InvitedAt: &old},
		{ID: "b", Type: domain.StaffTypeEmployee, InvitationStatus: domain.InvitationSent, InvitedAt: &fresh},
		{ID: "c", Type: domain.StaffTypeEmployee, InvitationStatus: domain.InvitationAccepted, InvitedAt: &old},
	})

	expired, err := repo.ExpireInvitations(ctx, time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "a", expired[0].ID)

	a, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationExpired, a.InvitationStatus)
}

func TestMemoryDirectorySearch(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDirectoryRepository(fixtures.MustLoad().Candidates)

	byABN, err := repo.Search(ctx, "55 666 777 888", 10)
	require.NoError(t, err)
	require.Len(t, byABN, 1)
	assert.Equal(t, "Rachel", byABN[0].FirstName)

	byName, err := repo.Search(ctx, "a", 2)
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	none, err := repo.Search(ctx, "zzz", 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryJobsStartingBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository(fixtures.MustLoad().Jobs)

	loc := time.FixedZone("AEDT", 11*3600)
	from := time.Date(2025, 10, 6, 0, 0, 0, 0, loc)
	jobs, err := repo.ListStartingBetween(ctx, from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.True(t, jobs[0].StartAt.Before(jobs[1].StartAt))
}

func TestRepositoriesSeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	ds := fixtures.MustLoad()
	repos := NewMemoryRepositories(nil)

	seeded, err := repos.Seed(ctx, ds)
	require.NoError(t, err)
	assert.True(t, seeded)

	all, err := repos.Staff.List(ctx, StaffFilter{})
	require.NoError(t, err)
	assert.Len(t, all, len(ds.Staff))

	found, err := repos.Directory.Search(ctx, "Rachel", 10)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	seeded, err = repos.Seed(ctx, ds)
	require.NoError(t, err)
	assert.False(t, seeded)
}
