// Package guard provides a fiber middleware that gates protected routes on
// the session Manager's state. It never triggers network calls of its own;
// it only reads the current snapshot.
package guard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-session"
)

// DefaultContextKey is the locals key the user snapshot is stored under.
const DefaultContextKey = "user"

type Config struct {
	// Manager is required.
	Manager *session.Manager

	// Filter skips the guard when it returns true (public sub-routes).
	Filter func(*fiber.Ctx) bool

	// ContextKey overrides the locals key for the user snapshot.
	ContextKey string

	// RedirectTo sends unauthenticated browsers to a login page instead of
	// responding 401.
	RedirectTo string

	// AllowLoading lets requests through while silent re-authentication is
	// still outstanding. Off by default: a loading session is treated as
	// unauthenticated.
	AllowLoading bool

	// ErrorHandler overrides the unauthenticated response.
	ErrorHandler func(*fiber.Ctx, session.State) error
}

// New returns the route guard middleware.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		snapshot := cfg.Manager.Snapshot()

		if snapshot.IsAuthenticated() || (cfg.AllowLoading && snapshot.IsLoading()) {
			c.Locals(cfg.ContextKey, snapshot.User)

			ctx := session.WithSnapshot(c.UserContext(), snapshot)
			if snapshot.User != nil {
				ctx = session.WithUser(ctx, snapshot.User)
			}
			c.SetUserContext(ctx)

			return c.Next()
		}

		return cfg.ErrorHandler(c, snapshot)
	}
}

func configDefault(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Manager == nil {
		panic("guard: session manager is required")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, _ session.State) error {
			if cfg.RedirectTo != "" {
				return c.Redirect(cfg.RedirectTo, fiber.StatusFound)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}
	}

	return cfg
}
