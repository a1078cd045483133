// Package session holds the process-wide authentication state and the
// one-time bootstrap that resolves it at startup.
package session

import (
	"sync"

	"github.com/spec-kit/dispatch-dashboard/internal/domain"
)

// State describes whether the current dispatcher is authenticated and who
// they are. While Loading is true, IsAuthenticated is not yet decided and
// consumers must suspend both protected and public-only rendering.
type State struct {
	IsAuthenticated bool
	User            *domain.UserProfile
	Token           string
	Loading         bool
}

// Store is the single source of truth for session state. It is written only
// through the named transitions below: the bootstrap, explicit login/signup
// completion, and logout. Everything else reads snapshots.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore starts in the conservative state: not authenticated, loading,
// so the session is verified before protected routes open up.
func NewStore() *Store {
	return &Store{state: State{Loading: true}}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// BeginResolving flags the state as undecided while a bootstrap or an
// explicit login call is in flight.
func (s *Store) BeginResolving() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
}

// ResolveSession publishes the outcome of a bootstrap run.
func (s *Store) ResolveSession(authenticated bool, user *domain.UserProfile, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{IsAuthenticated: authenticated, User: user, Token: token, Loading: false}
}

// LoginSuccess publishes an explicit login or signup completion.
func (s *Store) LoginSuccess(user *domain.UserProfile, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{IsAuthenticated: true, User: user, Token: token, Loading: false}
}

// Reset returns to the initial unauthenticated values on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
}
