package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/swiftapp/staff-service/internal/domain"
)

// The in-memory repositories back the API when no POSTGRES_DSN is configured.
// They return pgx.ErrNoRows for missing records so services treat both stores
// the same way.

type memoryStaffRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.StaffMember
	now   func() time.Time
}

// NewMemoryStaffRepository returns a StaffRepository seeded with a copy of seed.
func NewMemoryStaffRepository(seed []domain.StaffMember) StaffRepository {
	r := &memoryStaffRepository{byID: make(map[string]domain.StaffMember), now: time.Now}
	for _, s := range seed {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = r.now()
			s.UpdatedAt = s.CreatedAt
		}
		r.order = append(r.order, s.ID)
		r.byID[s.ID] = s
	}
	return r
}

func (r *memoryStaffRepository) Create(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staff.ID = uuid.NewString()
	staff.CreatedAt = r.now()
	staff.UpdatedAt = staff.CreatedAt
	r.order = append(r.order, staff.ID)
	r.byID[staff.ID] = *staff
	return nil
}

func (r *memoryStaffRepository) Update(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	staff.UpdatedAt = r.now()
	r.byID[staff.ID] = *staff
	return nil
}

func (r *memoryStaffRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryStaffRepository) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (r *memoryStaffRepository) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	return r.find(func(s domain.StaffMember) bool {
		return strings.EqualFold(s.Email, email)
	})
}

func (r *memoryStaffRepository) GetContractorByABN(_ context.Context, abn string) (*domain.StaffMember, error) {
	want := domain.StripSpaces(abn)
	return r.find(func(s domain.StaffMember) bool {
		return s.IsContractor() && domain.StripSpaces(s.ABN) == want
	})
}

func (r *memoryStaffRepository) List(_ context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.StaffMember
	for _, id := range r.order {
		s := r.byID[id]
		if filter.Type != nil && s.Type != *filter.Type {
			continue
		}
		if filter.Team != nil && s.Team != *filter.Team {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		matched = append(matched, s)
	}

	limit, offset := normalizePage(filter.Limit, filter.Offset, defaultStaffLimit)
	if offset >= len(matched) {
		return []domain.StaffMember{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *memoryStaffRepository) ExpireInvitations(_ context.Context, sentBefore time.Time) ([]domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []domain.StaffMember
	for _, id := range r.order {
		s := r.byID[id]
		if !s.IsEmployee() || s.InvitationStatus != domain.InvitationSent || s.InvitedAt == nil {
			continue
		}
		if !s.InvitedAt.Before(sentBefore) {
			continue
		}
		s.InvitationStatus = domain.InvitationExpired
		s.UpdatedAt = r.now()
		r.byID[id] = s
		expired = append(expired, s)
	}
	return expired, nil
}

func (r *memoryStaffRepository) find(match func(domain.StaffMember) bool) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		s := r.byID[id]
		if match(s) {
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memoryDirectoryRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.DirectoryContractor
}

// NewMemoryDirectoryRepository returns a DirectoryRepository seeded with seed.
func NewMemoryDirectoryRepository(seed []domain.DirectoryContractor) DirectoryRepository {
	r := &memoryDirectoryRepository{byID: make(map[string]domain.DirectoryContractor)}
	for _, c := range seed {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		r.byID[c.ID] = c
	}
	return r
}

func (r *memoryDirectoryRepository) Create(_ context.Context, c *domain.DirectoryContractor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	r.byID[c.ID] = *c
	return nil
}

func (r *memoryDirectoryRepository) GetByID(_ context.Context, id string) (*domain.DirectoryContractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (r *memoryDirectoryRepository) GetByABN(_ context.Context, abn string) (*domain.DirectoryContractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := domain.StripSpaces(abn)
	for _, c := range r.byID {
		if domain.StripSpaces(c.ABN) == want {
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryDirectoryRepository) Search(_ context.Context, term string, limit int) ([]domain.DirectoryContractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.DirectoryContractor{}
	for _, c := range r.byID {
		if domain.MatchesContractorTerm(c.FirstName, c.LastName, c.ABN, term) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type memoryJobRepository struct {
	mu   sync.RWMutex
	jobs []domain.Job
}

// NewMemoryJobRepository returns a JobRepository seeded with seed.
func NewMemoryJobRepository(seed []domain.Job) JobRepository {
	return &memoryJobRepository{jobs: append([]domain.Job(nil), seed...)}
}

func (r *memoryJobRepository) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = uuid.NewString()
	r.jobs = append(r.jobs, *job)
	return nil
}

func (r *memoryJobRepository) ListStartingBetween(_ context.Context, from, to time.Time) ([]domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Job
	for _, job := range r.jobs {
		if !job.StartAt.Before(from) && job.StartAt.Before(to) {
			result = append(result, job)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

type memoryUserRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.User
}

// NewMemoryUserRepository returns an empty UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{byID: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.byID[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) RecordLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.LastLoginAt = &at
	r.byID[id] = u
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}
