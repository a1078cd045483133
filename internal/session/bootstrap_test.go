package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-dashboard/internal/auth"
	"github.com/spec-kit/dispatch-dashboard/internal/backend"
	"github.com/spec-kit/dispatch-dashboard/internal/config"
	"github.com/spec-kit/dispatch-dashboard/internal/credentials"
	"github.com/spec-kit/dispatch-dashboard/internal/observability"
)

type testAuth struct {
	svc         *auth.Service
	creds       *credentials.Store
	verifyCalls *atomic.Int64
	logoutCalls *atomic.Int64
}

func newTestAuth(t *testing.T, verifyStatus int, verifyBody string) testAuth {
	t.Helper()
	verifyCalls := &atomic.Int64{}
	logoutCalls := &atomic.Int64{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/verifytoken":
			verifyCalls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(verifyStatus)
			_, _ = w.Write([]byte(verifyBody))
		case "/auth/logout":
			logoutCalls.Add(1)
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	creds := credentials.NewStore(t.TempDir())
	cfg := config.BackendConfig{BaseURL: srv.URL, TimeoutMS: 5000, MaxTimeoutMS: 10000}
	client := backend.New(cfg, creds, zap.NewNop(), observability.NewMetrics())
	return testAuth{
		svc:         auth.NewService(client, creds, zap.NewNop()),
		creds:       creds,
		verifyCalls: verifyCalls,
		logoutCalls: logoutCalls,
	}
}

func TestBootstrapWithoutTokenResolvesUnauthenticated(t *testing.T) {
	ta := newTestAuth(t, http.StatusOK, `{}`)
	store := NewStore()
	boot := NewBootstrap(ta.svc, store, zap.NewNop())

	boot.Run(context.Background())

	state := store.Snapshot()
	assert.False(t, state.Loading)
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	// No credential means no verification round trip.
	assert.EqualValues(t, 0, ta.verifyCalls.Load())
}

func TestBootstrapWithValidTokenResolvesAuthenticated(t *testing.T) {
	ta := newTestAuth(t, http.StatusOK, `{"user":{"id":"7","username":"kay"}}`)
	require.NoError(t, ta.creds.Save("good-tok"))
	store := NewStore()
	boot := NewBootstrap(ta.svc, store, zap.NewNop())

	boot.Run(context.Background())

	state := store.Snapshot()
	assert.False(t, state.Loading)
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "kay", state.User.Username)
	assert.Equal(t, "good-tok", state.Token)
}

func TestBootstrapWithStaleTokenLogsOutBeforeResolving(t *testing.T) {
	ta := newTestAuth(t, http.StatusUnauthorized, `{"message":"expired"}`)
	require.NoError(t, ta.creds.Save("stale-tok"))
	store := NewStore()
	boot := NewBootstrap(ta.svc, store, zap.NewNop())

	boot.Run(context.Background())

	state := store.Snapshot()
	assert.False(t, state.Loading)
	assert.False(t, state.IsAuthenticated)
	assert.Empty(t, state.Token)

	// Logout side effects: server invalidation attempted, fallback cleared.
	assert.EqualValues(t, 1, ta.logoutCalls.Load())
	_, ok := ta.creds.Load()
	assert.False(t, ok)
}

func TestBootstrapRunsOnce(t *testing.T) {
	ta := newTestAuth(t, http.StatusOK, `{"user":{"username":"kay"}}`)
	require.NoError(t, ta.creds.Save("good-tok"))
	store := NewStore()
	boot := NewBootstrap(ta.svc, store, zap.NewNop())

	boot.Run(context.Background())
	boot.Run(context.Background())

	assert.EqualValues(t, 1, ta.verifyCalls.Load())
}

func TestCancelledBootstrapPublishesNothing(t *testing.T) {
	ta := newTestAuth(t, http.StatusOK, `{"user":{"username":"kay"}}`)
	require.NoError(t, ta.creds.Save("good-tok"))
	store := NewStore()
	boot := NewBootstrap(ta.svc, store, zap.NewNop())

	boot.Cancel()
	boot.Run(context.Background())

	state := store.Snapshot()
	assert.True(t, state.Loading)
	assert.False(t, state.IsAuthenticated)
}

func TestStoreTransitions(t *testing.T) {
	store := NewStore()
	assert.True(t, store.Snapshot().Loading)

	store.ResolveSession(true, nil, "tok")
	state := store.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.False(t, state.Loading)

	store.Reset()
	state = store.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Token)
}
