package guard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-dashboard/internal/session"
)

// ProtectedMiddleware applies the Protected gate to a fiber route group.
func ProtectedMiddleware(store *session.Store, loginPath string) fiber.Handler {
	return adapt(store, func(state session.State) Decision {
		return Protected(state, loginPath)
	})
}

// PublicOnlyMiddleware applies the PublicOnly gate to a fiber route group.
func PublicOnlyMiddleware(store *session.Store, homePath string) fiber.Handler {
	return adapt(store, func(state session.State) Decision {
		return PublicOnly(state, homePath)
	})
}

func adapt(store *session.Store, decide func(session.State) Decision) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch d := decide(store.Snapshot()); d.Action {
		case ActionDefer:
			// No content and no redirect until the session resolves.
			return c.SendStatus(fiber.StatusNoContent)
		case ActionRedirect:
			return c.Redirect(d.Target, fiber.StatusSeeOther)
		default:
			return c.Next()
		}
	}
}
