package staffapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/apiclient"
	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/fixtures"
	"github.com/swiftapp/staff-service/internal/session"
)

func newService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), session.KeyAuthToken, "tok"))
	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL + "/", Session: store})
	require.NoError(t, err)
	return New(client)
}

func reply(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.OK(data))
}

func TestFetchEndpoints(t *testing.T) {
	ds := fixtures.MustLoad()
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/api/staff":
			reply(w, ds.Staff)
		case "/api/staff/employees":
			reply(w, ds.Staff[:4])
		case "/api/staff/contractors":
			reply(w, ds.Staff[4:])
		}
	})
	ctx := context.Background()

	all, err := svc.FetchStaff(ctx)
	require.NoError(t, err)
	employees, err := svc.FetchEmployees(ctx)
	require.NoError(t, err)
	contractors, err := svc.FetchContractors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(employees)+len(contractors))
	assert.Equal(t, "emp_001", all[0].ID)
}

func TestMutationsHitTheRightEndpoints(t *testing.T) {
	type call struct{ method, path, query string }
	var (
		mu    sync.Mutex
		calls []call
	)
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, call{r.Method, r.URL.Path, r.URL.RawQuery})
		mu.Unlock()
		switch r.URL.Path {
		case "/api/contractors/search":
			reply(w, []domain.DirectoryContractor{{ID: "cand_001"}})
		case "/api/staff/contractors/add":
			var req dto.AddContractorRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "cand_001", req.ContractorID)
			assert.Equal(t, domain.ContractStandard, req.ContractStatus)
			reply(w, domain.StaffMember{ID: "new", Type: domain.StaffTypeContractor})
		case "/api/staff/employees/invite":
			reply(w, domain.StaffMember{ID: "emp", InvitationStatus: domain.InvitationSent})
		case "/api/staff/contractors/invite":
			reply(w, domain.DirectoryContractor{ID: "dir"})
		default:
			reply(w, domain.StaffMember{ID: "emp_001", Team: "Team C"})
		}
	})
	ctx := context.Background()

	found, err := svc.SearchContractors(ctx, "Tom Anderson", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)

	added, err := svc.AddContractorToStaff(ctx, "cand_001", domain.ContractStandard)
	require.NoError(t, err)
	assert.Equal(t, "new", added.ID)

	invited, err := svc.InviteEmployee(ctx, domain.EmployeeInvite{FirstName: "Test"})
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationSent, invited.InvitationStatus)

	team := "Team C"
	updated, err := svc.UpdateStaffMember(ctx, "emp_001", domain.StaffPatch{Team: &team})
	require.NoError(t, err)
	assert.Equal(t, "Team C", updated.Team)

	require.NoError(t, svc.RemoveStaffMember(ctx, "emp_001"))

	entry, err := svc.InviteContractor(ctx, domain.ContractorInvite{FirstName: "Zoe"})
	require.NoError(t, err)
	assert.Equal(t, "dir", entry.ID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []call{
		{http.MethodGet, "/api/contractors/search", "limit=10&q=Tom+Anderson"},
		{http.MethodPost, "/api/staff/contractors/add", ""},
		{http.MethodPost, "/api/staff/employees/invite", ""},
		{http.MethodPut, "/api/staff/emp_001", ""},
		{http.MethodDelete, "/api/staff/emp_001", ""},
		{http.MethodPost, "/api/staff/contractors/invite", ""},
	}, calls)
}

func TestFailuresReturnFixedErrors(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(dto.Fail("INTERNAL_ERROR", "database exploded", nil))
	})
	ctx := context.Background()

	_, err := svc.FetchStaff(ctx)
	assert.Equal(t, ErrFetchStaff, err)
	assert.NotContains(t, err.Error(), "exploded")

	_, err = svc.FetchEmployees(ctx)
	assert.ErrorIs(t, err, ErrFetchEmployees)
	_, err = svc.FetchContractors(ctx)
	assert.ErrorIs(t, err, ErrFetchContractors)
	_, err = svc.InviteEmployee(ctx, domain.EmployeeInvite{})
	assert.ErrorIs(t, err, ErrInviteEmployee)
	_, err = svc.SearchContractors(ctx, "x", 5)
	assert.ErrorIs(t, err, ErrSearchContractors)
	_, err = svc.AddContractorToStaff(ctx, "x", domain.ContractStandard)
	assert.ErrorIs(t, err, ErrAddContractor)
	_, err = svc.UpdateStaffMember(ctx, "x", domain.StaffPatch{})
	assert.ErrorIs(t, err, ErrUpdateStaffMember)
	assert.ErrorIs(t, svc.RemoveStaffMember(ctx, "x"), ErrRemoveStaffMember)
	_, err = svc.InviteContractor(ctx, domain.ContractorInvite{})
	assert.ErrorIs(t, err, ErrInviteContractor)
}

func TestNetworkFailure(t *testing.T) {
	client, err := apiclient.New(apiclient.Options{BaseURL: "http://127.0.0.1:1/"})
	require.NoError(t, err)
	_, err = New(client).FetchStaff(context.Background())
	assert.ErrorIs(t, err, ErrFetchStaff)
}
