package session

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-dashboard/internal/auth"
	"github.com/spec-kit/dispatch-dashboard/internal/domain"
)

// Bootstrap resolves the initial session state exactly once per process.
// Publishes are gated on a liveness flag so a shutdown mid-verification
// cannot write into a store nobody is watching anymore.
type Bootstrap struct {
	auth   *auth.Service
	store  *Store
	logger *zap.Logger
	once   sync.Once
	alive  atomic.Bool
}

// NewBootstrap builds a live bootstrap bound to the store.
func NewBootstrap(authService *auth.Service, store *Store, logger *zap.Logger) *Bootstrap {
	b := &Bootstrap{auth: authService, store: store, logger: logger}
	b.alive.Store(true)
	return b
}

// Cancel stops any further state publishes.
func (b *Bootstrap) Cancel() {
	b.alive.Store(false)
}

// Run performs the resolution. Re-invocation is a no-op: the flow is bound
// to startup, not to every caller.
func (b *Bootstrap) Run(ctx context.Context) {
	b.once.Do(func() { b.run(ctx) })
}

func (b *Bootstrap) run(ctx context.Context) {
	if !b.alive.Load() {
		return
	}
	b.store.BeginResolving()

	token, ok := b.auth.Token()
	if !ok {
		b.logger.Info("no stored credential, starting unauthenticated")
		b.publish(false, nil, "")
		return
	}

	env := b.auth.FetchProfile(ctx)
	if env.Success {
		user := b.auth.Profile(env)
		if exp := auth.SessionExpiry(token); !exp.IsZero() {
			b.logger.Info("session verified", zap.Time("expires_at", exp))
		} else {
			b.logger.Info("session verified")
		}
		b.publish(true, user, token)
		return
	}

	// Stale or revoked credential: clear client state before publishing so
	// no consumer ever observes an unauthenticated state alongside a stored
	// token.
	b.logger.Warn("session verification failed", zap.String("error", env.Message()))
	b.auth.Logout(ctx)
	b.publish(false, nil, "")
}

func (b *Bootstrap) publish(authenticated bool, user *domain.UserProfile, token string) {
	if !b.alive.Load() {
		return
	}
	b.store.ResolveSession(authenticated, user, token)
}
