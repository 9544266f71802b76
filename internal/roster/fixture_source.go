package roster

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/fixtures"
)

// FixtureSource serves the embedded sample dataset and applies mutations to its
// own copy. List waits for delay first to mimic network latency.
type FixtureSource struct {
	delay      time.Duration
	candidates []domain.DirectoryContractor
	newID      func() string
	now        func() time.Time

	mu    sync.Mutex
	order []string
	byID  map[string]domain.StaffMember
}

// NewFixtureSource copies ds. A nil ds loads the embedded dataset.
func NewFixtureSource(ds *fixtures.Dataset, delay time.Duration) *FixtureSource {
	if ds == nil {
		ds = fixtures.MustLoad()
	}
	s := &FixtureSource{
		delay:      delay,
		candidates: append([]domain.DirectoryContractor(nil), ds.Candidates...),
		newID:      uuid.NewString,
		now:        time.Now,
		byID:       make(map[string]domain.StaffMember, len(ds.Staff)),
	}
	for _, staff := range ds.Staff {
		s.order = append(s.order, staff.ID)
		s.byID[staff.ID] = staff
	}
	return s
}

// List returns the roster after the configured delay.
func (s *FixtureSource) List(ctx context.Context) ([]domain.StaffMember, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return s.ListNow(ctx)
}

// ListNow returns the roster without the delay.
func (s *FixtureSource) ListNow(context.Context) ([]domain.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.StaffMember, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Invite appends a pending employee. The input is not validated here.
func (s *FixtureSource) Invite(_ context.Context, in domain.EmployeeInvite) error {
	staff := in.ToStaff(s.newID(), s.now().Format("2006-01-02"))
	now := s.now()
	staff.InvitedAt = &now
	s.append(staff)
	return nil
}

// Search matches candidates with the contractor search rule.
func (s *FixtureSource) Search(_ context.Context, term string) ([]domain.DirectoryContractor, error) {
	out := []domain.DirectoryContractor{}
	for _, c := range s.candidates {
		if domain.MatchesContractorTerm(c.FirstName, c.LastName, c.ABN, term) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Add appends the candidate with contractorID, or a placeholder when the id is
// unknown. Contractors already on the roster are added again.
func (s *FixtureSource) Add(_ context.Context, contractorID string, status domain.ContractStatus) error {
	candidate := placeholderContractor(contractorID)
	for _, c := range s.candidates {
		if c.ID == contractorID {
			candidate = c
			break
		}
	}
	s.append(candidate.ToStaff(s.newID(), status, s.now().Format("2006-01-02")))
	return nil
}

// Update patches the record with id.
func (s *FixtureSource) Update(_ context.Context, id string, patch domain.StaffPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[id]
	if !ok {
		return ErrStaffNotFound
	}
	s.byID[id] = patch.Apply(current)
	return nil
}

// Remove drops the record with id.
func (s *FixtureSource) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrStaffNotFound
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *FixtureSource) append(staff domain.StaffMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, staff.ID)
	s.byID[staff.ID] = staff
}

func placeholderContractor(id string) domain.DirectoryContractor {
	return domain.DirectoryContractor{
		ID:        id,
		FirstName: "New",
		LastName:  "Contractor",
		Email:     "contractor@example.com",
		Phone:     "+61 400 000 000",
		ABN:       "00 000 000 000",
		Role:      "Contractor",
		RateType:  domain.RateHourly,
		Rate:      50,
	}
}
