package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftapp/staff-service/internal/fixtures"
)

// Repositories groups every store the API needs.
type Repositories struct {
	Staff     StaffRepository
	Directory DirectoryRepository
	Jobs      JobRepository
	Users     UserRepository
}

// NewPostgresRepositories builds pgx-backed repositories over pool.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Staff:     NewStaffRepository(pool),
		Directory: NewDirectoryRepository(pool),
		Jobs:      NewJobRepository(pool),
		Users:     NewUserRepository(pool),
	}
}

// NewMemoryRepositories builds in-memory repositories seeded from ds. A nil ds leaves them empty.
func NewMemoryRepositories(ds *fixtures.Dataset) Repositories {
	if ds == nil {
		ds = &fixtures.Dataset{}
	}
	return Repositories{
		Staff:     NewMemoryStaffRepository(ds.Staff),
		Directory: NewMemoryDirectoryRepository(ds.Candidates),
		Jobs:      NewMemoryJobRepository(ds.Jobs),
		Users:     NewMemoryUserRepository(),
	}
}

// Seed inserts the dataset when the roster is empty. It returns whether anything was written.
func (r Repositories) Seed(ctx context.Context, ds *fixtures.Dataset) (bool, error) {
	existing, err := r.Staff.List(ctx, StaffFilter{Limit: 1})
	if err != nil {
		return false, fmt.Errorf("check roster: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	for i := range ds.Staff {
		staff := ds.Staff[i]
		if err := r.Staff.Create(ctx, &staff); err != nil {
			return false, fmt.Errorf("seed staff %s: %w", ds.Staff[i].ID, err)
		}
	}
	for i := range ds.Candidates {
		entry := ds.Candidates[i]
		if err := r.Directory.Create(ctx, &entry); err != nil {
			return false, fmt.Errorf("seed directory %s: %w", ds.Candidates[i].ID, err)
		}
	}
	for i := range ds.Jobs {
		job := ds.Jobs[i]
		if err := r.Jobs.Create(ctx, &job); err != nil {
			return false, fmt.Errorf("seed job %s: %w", ds.Jobs[i].ID, err)
		}
	}
	return true, nil
}
