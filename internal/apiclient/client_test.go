package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/session"
)

func writeEnvelope(w http.ResponseWriter, status int, env dto.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func newClient(t *testing.T, h http.HandlerFunc) (*Client, session.Store) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := session.NewMemoryStore()
	c, err := New(Options{BaseURL: srv.URL, Session: store})
	require.NoError(t, err)
	return c, store
}

func TestDoSendsBearerAndDecodesData(t *testing.T) {
	var gotAuth, gotQuery string
	c, store := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/contractors/search", r.URL.Path)
		writeEnvelope(w, http.StatusOK, dto.OK([]string{"a", "b"}))
	})
	require.NoError(t, store.Set(context.Background(), session.KeyAuthToken, "tok"))

	var out []string
	err := c.Do(context.Background(), http.MethodGet, "/api/contractors/search", url.Values{"q": {"tom"}}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "q=tom", gotQuery)
}

func TestDoWithoutTokenSendsNoAuthorization(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, dto.OK(nil))
	})
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "api/staff", nil, nil, nil))
}

func TestUnauthorizedClearsTokens(t *testing.T) {
	ctx := context.Background()
	c, store := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, dto.Fail("UNAUTHORIZED", "invalid token", nil))
	})
	require.NoError(t, session.SaveTokens(ctx, store, session.Tokens{AuthToken: "a", RefreshToken: "r", UserID: "u"}))

	err := c.Do(ctx, http.MethodGet, "api/staff", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "UNAUTHORIZED", se.Code)
	assert.Equal(t, "invalid token", se.Message)

	tokens, err := session.LoadTokens(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, session.Tokens{}, tokens)
}

func TestServerErrorWithoutEnvelope(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	err := c.Do(context.Background(), http.MethodGet, "api/staff", nil, nil, nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.False(t, IsUnauthorized(err))
}

func TestUnsuccessfulEnvelopeOn200(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusOK, dto.Envelope{Success: false})
	})
	err := c.Do(context.Background(), http.MethodGet, "api/staff", nil, nil, nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusOK, se.StatusCode)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	c, err := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	err = c.Do(context.Background(), http.MethodGet, "api/staff", nil, nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "localhost"})
	assert.Error(t, err)

	c, err := New(Options{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/", c.BaseURL())
}

func TestLoginRefreshLogout(t *testing.T) {
	ctx := context.Background()
	var loggedOut string
	c, store := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req dto.LoginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "admin@swiftapp.com.au", req.Email)
			writeEnvelope(w, http.StatusOK, dto.OK(dto.AuthResponse{Token: "t1", RefreshToken: "r1", UserID: "u1"}))
		case "/api/auth/refresh":
			var req dto.RefreshRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "r1", req.RefreshToken)
			writeEnvelope(w, http.StatusOK, dto.OK(dto.AuthResponse{Token: "t2", RefreshToken: "r2", UserID: "u1"}))
		case "/api/auth/logout":
			var req dto.RefreshRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			loggedOut = req.RefreshToken
			writeEnvelope(w, http.StatusOK, dto.OK(nil))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	resp, err := c.Login(ctx, "admin@swiftapp.com.au", "pw")
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.Token)
	v, err := store.Get(ctx, session.KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, "u1", v)

	_, err = c.Refresh(ctx)
	require.NoError(t, err)
	v, err = store.Get(ctx, session.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "t2", v)

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, "r2", loggedOut)
	_, err = store.Get(ctx, session.KeyAuthToken)
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = c.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
