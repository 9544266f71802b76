package roster

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/domain"
)

// FallbackWarning is set when the roster comes from the fallback source.
const FallbackWarning = "Unable to reach the server. Showing sample data."

// ErrEmptySearchTerm is returned by SearchContractor for a blank term.
var ErrEmptySearchTerm = errors.New("search term required")

// immediateLister is implemented by sources whose List waits on purpose. Reloads
// after a mutation use ListNow so only the initial load pays the wait.
type immediateLister interface {
	ListNow(ctx context.Context) ([]domain.StaffMember, error)
}

// Filters narrows FilterStaff. Empty fields and "all" match everything.
type Filters struct {
	Type   string
	Team   string
	Status string
}

// Stats summarises the roster.
type Stats struct {
	TotalActive         int `json:"totalActive" yaml:"totalActive"`
	TotalEmployees      int `json:"totalEmployees" yaml:"totalEmployees"`
	TotalContractors    int `json:"totalContractors" yaml:"totalContractors"`
	TotalTeams          int `json:"totalTeams" yaml:"totalTeams"`
	AverageEmployeeRate int `json:"averageEmployeeRate" yaml:"averageEmployeeRate"`
}

// Store caches the roster from a DataSource. Every mutation goes to the source
// and then reloads the full list.
type Store struct {
	source   DataSource
	fallback DataSource
	logger   *zap.Logger

	mu      sync.RWMutex
	order   []string
	byID    map[string]domain.StaffMember
	loading bool
	warning string
	err     error
}

// Option configures a Store.
type Option func(*Store)

// WithFallback serves fallback when the primary source cannot list the roster.
func WithFallback(fallback DataSource) Option {
	return func(s *Store) { s.fallback = fallback }
}

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore builds an empty store. Call LoadStaff to populate it.
func NewStore(source DataSource, opts ...Option) *Store {
	s := &Store{
		source: source,
		logger: zap.NewNop(),
		byID:   make(map[string]domain.StaffMember),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadStaff replaces the cached roster with the source's list. When the source
// fails and a fallback is configured the fallback list is used and Warning is
// set; the call then succeeds.
func (s *Store) LoadStaff(ctx context.Context) error {
	return s.load(ctx, s.source.List)
}

func (s *Store) load(ctx context.Context, list func(context.Context) ([]domain.StaffMember, error)) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	staff, err := list(ctx)
	warning := ""
	if err != nil && s.fallback != nil {
		s.logger.Warn("staff source unavailable, using fallback", zap.Error(err))
		fallbackList, fallbackErr := s.fallback.List(ctx)
		if fallbackErr == nil {
			staff, err, warning = fallbackList, nil, FallbackWarning
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.warning = warning
	s.err = err
	if err != nil {
		return err
	}
	s.order = make([]string, 0, len(staff))
	s.byID = make(map[string]domain.StaffMember, len(staff))
	for _, member := range staff {
		if _, dup := s.byID[member.ID]; !dup {
			s.order = append(s.order, member.ID)
		}
		s.byID[member.ID] = member
	}
	return nil
}

// RefreshStaff reloads the roster.
func (s *Store) RefreshStaff(ctx context.Context) error {
	return s.LoadStaff(ctx)
}

// InviteEmployee sends in to the source and reloads. The store does not
// validate; callers run ValidateEmployeeInvite first.
func (s *Store) InviteEmployee(ctx context.Context, in domain.EmployeeInvite) error {
	return s.mutate(ctx, "invite employee", func() error { return s.source.Invite(ctx, in) })
}

// SearchContractor queries the directory. A blank term fails with
// ErrEmptySearchTerm in every mode. The result is never nil.
func (s *Store) SearchContractor(ctx context.Context, term string) ([]domain.DirectoryContractor, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrEmptySearchTerm
	}
	found, err := s.source.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if found == nil {
		found = []domain.DirectoryContractor{}
	}
	return found, nil
}

// AddContractor puts a directory contractor on the roster and reloads.
// Duplicate detection is left to the source.
func (s *Store) AddContractor(ctx context.Context, contractorID string, status domain.ContractStatus) error {
	return s.mutate(ctx, "add contractor", func() error { return s.source.Add(ctx, contractorID, status) })
}

// UpdateStaff applies patch to the record with id and reloads.
func (s *Store) UpdateStaff(ctx context.Context, id string, patch domain.StaffPatch) error {
	return s.mutate(ctx, "update staff", func() error { return s.source.Update(ctx, id, patch) })
}

// RemoveStaff deletes the record with id and reloads.
func (s *Store) RemoveStaff(ctx context.Context, id string) error {
	return s.mutate(ctx, "remove staff", func() error { return s.source.Remove(ctx, id) })
}

func (s *Store) mutate(ctx context.Context, op string, call func() error) error {
	if err := call(); err != nil {
		s.logger.Debug(op+" failed", zap.Error(err))
		return err
	}
	reload := s.source.List
	if l, ok := s.source.(immediateLister); ok {
		reload = l.ListNow
	}
	if err := s.load(ctx, reload); err != nil {
		return fmt.Errorf("%s: reload roster: %w", op, err)
	}
	return nil
}

// Staff returns the cached roster in source order.
func (s *Store) Staff() []domain.StaffMember {
	return s.FilterStaff(Filters{})
}

// Employees returns the cached employees.
func (s *Store) Employees() []domain.StaffMember {
	return s.FilterStaff(Filters{Type: string(domain.StaffTypeEmployee)})
}

// Contractors returns the cached contractors.
func (s *Store) Contractors() []domain.StaffMember {
	return s.FilterStaff(Filters{Type: string(domain.StaffTypeContractor)})
}

// FilterStaff returns the cached records matching every set filter.
func (s *Store) FilterStaff(f Filters) []domain.StaffMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.StaffMember{}
	for _, id := range s.order {
		staff := s.byID[id]
		if !matches(f.Type, string(staff.Type)) || !matches(f.Team, staff.Team) || !matches(f.Status, string(staff.Status)) {
			continue
		}
		out = append(out, staff)
	}
	return out
}

func matches(want, got string) bool {
	return want == "" || want == "all" || want == got
}

// Stats computes roster totals from the cache.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		stats   Stats
		rateSum float64
		teams   = make(map[string]struct{})
	)
	for _, id := range s.order {
		staff := s.byID[id]
		if staff.Status == domain.StaffStatusActive {
			stats.TotalActive++
		}
		if staff.Team != "" {
			teams[staff.Team] = struct{}{}
		}
		switch staff.Type {
		case domain.StaffTypeEmployee:
			stats.TotalEmployees++
			rateSum += staff.HourlyRate
		case domain.StaffTypeContractor:
			stats.TotalContractors++
		}
	}
	stats.TotalTeams = len(teams)
	if stats.TotalEmployees > 0 {
		stats.AverageEmployeeRate = int(math.Round(rateSum / float64(stats.TotalEmployees)))
	}
	return stats
}

// IsLoading reports whether a load is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Warning returns the non-fatal message from the last load, if any.
func (s *Store) Warning() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warning
}

// Err returns the error from the last load, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
