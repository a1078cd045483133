// Package guard decides render-vs-redirect for routes based on session state.
package guard

import "github.com/spec-kit/dispatch-dashboard/internal/session"

// Action is a gate outcome.
type Action int

const (
	// ActionAllow lets the request through to the route.
	ActionAllow Action = iota
	// ActionRedirect sends the caller to Decision.Target.
	ActionRedirect
	// ActionDefer withholds both content and redirect while the session is
	// still resolving; the UI shows its global loading indicator instead.
	ActionDefer
)

// Decision is the outcome of a gate check.
type Decision struct {
	Action Action
	Target string
}

// Protected gates authenticated-only routes. Unresolved sessions defer;
// unauthenticated callers are sent to the public entry path.
func Protected(state session.State, loginPath string) Decision {
	if state.Loading {
		return Decision{Action: ActionDefer}
	}
	if state.IsAuthenticated {
		return Decision{Action: ActionAllow}
	}
	return Decision{Action: ActionRedirect, Target: loginPath}
}

// PublicOnly gates entry routes such as login. Authenticated callers are
// sent to the default landing path instead.
func PublicOnly(state session.State, homePath string) Decision {
	if state.Loading {
		return Decision{Action: ActionDefer}
	}
	if state.IsAuthenticated {
		return Decision{Action: ActionRedirect, Target: homePath}
	}
	return Decision{Action: ActionAllow}
}
