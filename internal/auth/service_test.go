package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-dashboard/internal/backend"
	"github.com/spec-kit/dispatch-dashboard/internal/config"
	"github.com/spec-kit/dispatch-dashboard/internal/credentials"
	"github.com/spec-kit/dispatch-dashboard/internal/observability"
)

func newTestService(t *testing.T, srv *httptest.Server) (*Service, *credentials.Store) {
	t.Helper()
	creds := credentials.NewStore(t.TempDir())
	cfg := config.BackendConfig{BaseURL: srv.URL, TimeoutMS: 5000, MaxTimeoutMS: 10000}
	client := backend.New(cfg, creds, zap.NewNop(), observability.NewMetrics())
	return NewService(client, creds, zap.NewNop()), creds
}

func TestLoginPersistsBodyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"body-tok","user":{"username":"kay"}}`))
	}))
	defer srv.Close()

	svc, creds := newTestService(t, srv)
	env := svc.Login(context.Background(), "kay", "secret")

	require.True(t, env.Success)
	tok, ok := creds.Load()
	require.True(t, ok)
	assert.Equal(t, "body-tok", tok)
}

func TestLoginFailureDoesNotPersist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	svc, creds := newTestService(t, srv)
	env := svc.Login(context.Background(), "kay", "wrong")

	require.False(t, env.Success)
	assert.Equal(t, "invalid credentials", env.Message())
	_, ok := creds.Load()
	assert.False(t, ok)
}

func TestTokenPrefersCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "cookie-tok", Path: "/", HttpOnly: true})
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"body-tok"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc, creds := newTestService(t, srv)
	svc.Login(context.Background(), "kay", "secret")

	// Both homes now hold a credential; the cookie wins.
	stored, ok := creds.Load()
	require.True(t, ok)
	assert.Equal(t, "body-tok", stored)

	tok, ok := svc.Token()
	require.True(t, ok)
	assert.Equal(t, "cookie-tok", tok)
}

func TestLogoutClearsStateEvenWhenServerFails(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc, creds := newTestService(t, srv)
	require.NoError(t, creds.Save("tok"))

	svc.Logout(context.Background())
	_, ok := creds.Load()
	assert.False(t, ok)

	// Second logout is a no-op locally and still must not blow up.
	svc.Logout(context.Background())
	_, ok = creds.Load()
	assert.False(t, ok)
	assert.Equal(t, 2, calls)
}

func TestFetchProfileExtractsUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verifytoken", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"7","username":"kay","role":"dispatcher"}}`))
	}))
	defer srv.Close()

	svc, _ := newTestService(t, srv)
	env := svc.FetchProfile(context.Background())
	require.True(t, env.Success)

	user := svc.Profile(env)
	require.NotNil(t, user)
	assert.Equal(t, "kay", user.Username)
	assert.Equal(t, "dispatcher", user.Role)
}

func TestSessionExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	assert.True(t, SessionExpiry(signed).Equal(exp))
	assert.True(t, SessionExpiry("not-a-jwt").IsZero())
	assert.True(t, SessionExpiry("").IsZero())
}
