package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/session"
)

// setupEnv points the CLI at a private session file and returns its path.
func setupEnv(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	t.Setenv("CLIENT_SESSION_FILE", path)
	t.Setenv("CLIENT_SESSION_STORE", "file")
	t.Setenv("CLIENT_USE_MOCK", "false")
	t.Setenv("CLIENT_MOCK_DELAY_MS", "0")
	t.Setenv("CLIENT_BASE_URL", baseURL)
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	a := &app{}
	cmd := newRootCmd(a)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	a.close()
	return out.String(), errOut.String(), err
}

func TestMockStaffListFiltersByType(t *testing.T) {
	setupEnv(t, "http://localhost:1/")

	out, _, err := run(t, "--mock", "staff", "list", "--type", "employee", "-o", "json")
	require.NoError(t, err)

	var list []domain.StaffMember
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 4)
	for _, s := range list {
		assert.Equal(t, domain.StaffTypeEmployee, s.Type)
	}
}

func TestMockStaffStatsYAML(t *testing.T) {
	setupEnv(t, "http://localhost:1/")

	out, _, err := run(t, "--mock", "staff", "stats", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "totalEmployees: 4")
	assert.Contains(t, out, "totalContractors: 2")
	assert.Contains(t, out, "averageEmployeeRate: 34")
}

func TestMockSearchPrintsTable(t *testing.T) {
	setupEnv(t, "http://localhost:1/")

	out, _, err := run(t, "--mock", "staff", "search", "55 666 777 888")
	require.NoError(t, err)
	assert.Contains(t, out, "Rachel Green")
	assert.NotContains(t, out, "Tom Anderson")
}

func TestInputValidationHappensBeforeTheStore(t *testing.T) {
	setupEnv(t, "http://localhost:1/")

	_, _, err := run(t, "--mock", "staff", "invite-employee", "--email", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "firstName is required")

	_, _, err = run(t, "--mock", "staff", "add-contractor", "cand_001", "--contract-status", "weekly")
	assert.ErrorContains(t, err, "invalid contract status")

	_, _, err = run(t, "--mock", "staff", "update", "emp_001")
	assert.ErrorContains(t, err, "patch changes nothing")
}

func TestMockMutationsSucceed(t *testing.T) {
	setupEnv(t, "http://localhost:1/")

	out, _, err := run(t, "--mock", "staff", "invite-employee",
		"--first-name", "Test", "--last-name", "Employee", "--email", "test@example.com",
		"--phone", "+61 400 000 000", "--role", "Mover", "--team", "Team A", "--hourly-rate", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Invitation sent to test@example.com")

	out, _, err = run(t, "--mock", "staff", "update", "emp_001", "--team", "Team C")
	require.NoError(t, err)
	assert.Contains(t, out, "emp_001 updated")

	_, _, err = run(t, "--mock", "staff", "remove", "missing")
	assert.Error(t, err)
}

func TestMockRejectsServerOnlyCommands(t *testing.T) {
	setupEnv(t, "http://localhost:1/")

	_, _, err := run(t, "--mock", "calendar")
	assert.ErrorIs(t, err, errMockUnsupported)

	_, _, err = run(t, "--mock", "login", "--email", "a@b.co", "--password", "x")
	assert.ErrorIs(t, err, errMockUnsupported)
}

func TestUnknownOutputFormat(t *testing.T) {
	setupEnv(t, "http://localhost:1/")

	_, _, err := run(t, "--mock", "staff", "list", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

type fakeServer struct {
	mu       sync.Mutex
	authSeen []string
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"success":true,"data":{"token":"access-1","refreshToken":"refresh-1","userId":"u1","user":{"id":"u1","email":"manager@swift.test","role":"MANAGER"}}}`)
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"success":true,"data":null}`)
	})
	mux.HandleFunc("/api/staff/employees", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		write(w, http.StatusOK, `{"success":true,"data":[{"id":"e1","type":"employee","firstName":"Ada","lastName":"Lane","status":"active","hourlyRate":31}]}`)
	})
	mux.HandleFunc("/api/staff/contractors", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		write(w, http.StatusOK, `{"success":true,"data":[{"id":"c1","type":"contractor","firstName":"Cy","lastName":"Ng","status":"active","abn":"12345678901","rateType":"hourly","rate":55}]}`)
	})
	mux.HandleFunc("/api/staff", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusInternalServerError, `{"success":false,"error":{"code":"INTERNAL_ERROR","message":"boom"}}`)
	})
	return mux
}

func (f *fakeServer) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authSeen = append(f.authSeen, r.Header.Get("Authorization"))
}

func TestLoginOverviewLogout(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()
	path := setupEnv(t, srv.URL)

	out, _, err := run(t, "login", "--email", "manager@swift.test", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as manager@swift.test (MANAGER)")

	out, _, err = run(t, "staff", "overview", "-o", "json")
	require.NoError(t, err)
	var got overview
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Employees, 1)
	require.Len(t, got.Contractors, 1)
	assert.Equal(t, "Ada", got.Employees[0].FirstName)
	assert.Equal(t, []string{"Bearer access-1", "Bearer access-1"}, fake.authSeen)

	_, _, err = run(t, "logout")
	require.NoError(t, err)
	tokens, err := session.LoadTokens(context.Background(), session.NewFileStore(path, session.DefaultNamespace))
	require.NoError(t, err)
	assert.Empty(t, tokens.AuthToken)
	assert.Empty(t, tokens.RefreshToken)
}

func TestStaffListFallsBackWhenServerFails(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()
	setupEnv(t, srv.URL)

	out, errOut, err := run(t, "staff", "list", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Showing sample data")

	var list []domain.StaffMember
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 6)
}
