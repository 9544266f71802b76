package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/events"
	"github.com/swiftapp/staff-service/internal/fixtures"
	"github.com/swiftapp/staff-service/internal/repository"
	apperrors "github.com/swiftapp/staff-service/pkg/util/errorutil"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestStaffService(t *testing.T) (*StaffService, *recorder) {
	t.Helper()
	ds := fixtures.MustLoad()
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	rec := &recorder{}
	for _, et := range []events.EventType{
		events.EventEmployeeInvited, events.EventContractorAdded, events.EventContractorInvited,
		events.EventStaffUpdated, events.EventStaffRemoved, events.EventInvitationExpired,
	} {
		dispatcher.Subscribe(et, rec.handle)
	}
	svc := NewStaffService(StaffDependencies{
		StaffRepo:     repository.NewMemoryStaffRepository(ds.Staff),
		DirectoryRepo: repository.NewMemoryDirectoryRepository(ds.Candidates),
		Dispatcher:    dispatcher,
	})
	svc.now = func() time.Time { return time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC) }
	return svc, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de.HTTPStatus
}

var manager = &domain.User{ID: "user-1", Role: domain.UserRoleManager}

func TestInviteEmployee(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestStaffService(t)

	staff, err := svc.InviteEmployee(ctx, manager, domain.EmployeeInvite{
		FirstName: "Test", LastName: "Employee", Email: "test@example.com",
		Phone: "+61 400 000 000", Role: "Mover", Team: "Team A", HourlyRate: 30,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, staff.ID)
	assert.Equal(t, domain.StaffStatusPending, staff.Status)
	assert.Equal(t, domain.InvitationSent, staff.InvitationStatus)
	assert.False(t, staff.AccountLinked)
	assert.Equal(t, "2025-10-01", staff.StartDate)
	require.NotNil(t, staff.InvitedAt)

	all, err := svc.ListStaff(ctx, StaffListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 7)
	assert.Equal(t, []events.EventType{events.EventEmployeeInvited}, rec.types())

	_, err = svc.InviteEmployee(ctx, manager, domain.EmployeeInvite{
		FirstName: "Other", LastName: "Person", Email: "TEST@example.com", Role: "Mover", HourlyRate: 25,
	})
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

func TestInviteEmployeeValidation(t *testing.T) {
	svc, rec := newTestStaffService(t)
	_, err := svc.InviteEmployee(context.Background(), manager, domain.EmployeeInvite{Email: "nope"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	problems, ok := de.Details["errors"].([]string)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(problems), 3)
	assert.Empty(t, rec.types())
}

func TestSearchContractors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStaffService(t)

	byABN, err := svc.SearchContractors(ctx, "11222333444", 0)
	require.NoError(t, err)
	require.Len(t, byABN, 1)
	assert.Equal(t, "cand_001", byABN[0].ID)

	byName, err := svc.SearchContractors(ctx, "green", 0)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Rachel", byName[0].FirstName)

	none, err := svc.SearchContractors(ctx, "nobody", 100)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.SearchContractors(ctx, "   ", 10)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestAddContractor(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestStaffService(t)

	staff, err := svc.AddContractor(ctx, manager, "cand_002", domain.ContractPreferred)
	require.NoError(t, err)
	assert.Equal(t, domain.StaffTypeContractor, staff.Type)
	assert.Equal(t, "Rachel", staff.FirstName)
	assert.Equal(t, "55 666 777 888", staff.ABN)
	assert.Equal(t, domain.ContractPreferred, staff.ContractStatus)
	assert.NotEqual(t, "cand_002", staff.ID)

	_, err = svc.AddContractor(ctx, manager, "cand_002", domain.ContractStandard)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))

	_, err = svc.AddContractor(ctx, manager, "cand_404", domain.ContractStandard)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))

	_, err = svc.AddContractor(ctx, manager, "cand_001", domain.ContractStatus("casual"))
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	assert.Equal(t, []events.EventType{events.EventContractorAdded}, rec.types())
}

func TestUpdateStaffMember(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestStaffService(t)

	team := "Team C"
	rate := 37.5
	updated, err := svc.UpdateStaffMember(ctx, manager, "emp_003", domain.StaffPatch{Team: &team, HourlyRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, "emp_003", updated.ID)
	assert.Equal(t, domain.StaffTypeEmployee, updated.Type)
	assert.Equal(t, "Team C", updated.Team)
	assert.Equal(t, 37.5, updated.HourlyRate)

	require.Len(t, rec.events, 1)
	payload, ok := rec.events[0].Payload.(events.StaffUpdatedPayload)
	require.True(t, ok)
	assert.Equal(t, []string{"hourlyRate", "team"}, payload.Fields)

	_, err = svc.UpdateStaffMember(ctx, manager, "missing", domain.StaffPatch{Team: &team})
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))

	_, err = svc.UpdateStaffMember(ctx, manager, "emp_003", domain.StaffPatch{})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	taken := "john.smith@swiftapp.com.au"
	_, err = svc.UpdateStaffMember(ctx, manager, "emp_003", domain.StaffPatch{Email: &taken})
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

func TestRemoveStaffMember(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestStaffService(t)

	require.NoError(t, svc.RemoveStaffMember(ctx, manager, "con_002"))
	all, err := svc.ListStaff(ctx, StaffListFilters{})
	require.NoError(t, err)
	for _, s := range all {
		assert.NotEqual(t, "con_002", s.ID)
	}

	err = svc.RemoveStaffMember(ctx, manager, "con_002")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
	assert.Equal(t, []events.EventType{events.EventStaffRemoved}, rec.types())
}

func TestInviteContractor(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestStaffService(t)

	in := domain.ContractorInvite{
		FirstName: "Zoe", LastName: "Park", Email: "zoe@parkfreight.com.au",
		ABN: "33 444 555 666", RateType: domain.RateHourly, Rate: 48,
	}
	entry, err := svc.InviteContractor(ctx, manager, in)
	require.NoError(t, err)
	assert.False(t, entry.IsVerified)

	found, err := svc.SearchContractors(ctx, "Park", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, entry.ID, found[0].ID)

	_, err = svc.InviteContractor(ctx, manager, in)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
	assert.Equal(t, []events.EventType{events.EventContractorInvited}, rec.types())
}

func TestExpireInvitations(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestStaffService(t)

	_, err := svc.InviteEmployee(ctx, manager, domain.EmployeeInvite{
		FirstName: "Late", LastName: "Joiner", Email: "late@example.com", Role: "Mover", HourlyRate: 30,
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC) }
	n, err := svc.ExpireInvitations(ctx, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []events.EventType{events.EventEmployeeInvited, events.EventInvitationExpired}, rec.types())

	n, err = svc.ExpireInvitations(ctx, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}
