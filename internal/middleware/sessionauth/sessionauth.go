package sessionauth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/litboard/api/internal/pkg/log"
	"github.com/litboard/api/internal/sessions"
	"github.com/litboard/api/internal/types"
)

// Config defines the config for the session middleware.
type Config struct {
	// Store resolves cookie values to session data.
	Store *sessions.Store
	// CookieName is the name of the session cookie.
	CookieName string
	// Required rejects the request when no valid session is present.
	// When false the middleware only populates the user context if a
	// session exists, which lets read endpoints tailor responses to
	// the viewer without demanding a login.
	Required bool
}

// New creates a new middleware handler.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookieValue := c.Cookies(cfg.CookieName)
		if cookieValue == "" {
			if cfg.Required {
				return unauthorized(c)
			}
			return c.Next()
		}

		user, err := cfg.Store.Get(c.UserContext(), cookieValue)
		if err != nil {
			if cfg.Required {
				log.WarnWithContext(c.UserContext(), "Rejected session cookie: %v", err)
				return unauthorized(c)
			}
			// An optional session that fails to resolve is treated the
			// same as no session at all.
			return c.Next()
		}

		c.Locals(types.UserCtxName, *user)
		return c.Next()
	}
}

// UserFromLocals extracts the authenticated user from the request, if any.
func UserFromLocals(c *fiber.Ctx) (types.UserContext, bool) {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	return user, ok
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    "UNAUTHORIZED",
		"message": "Not authenticated",
	})
}
