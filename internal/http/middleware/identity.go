package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	// UserIDHeader carries the caller identity until real authentication
	// lands.
	// TODO: replace the header stub with JWT auth once the auth service is up.
	UserIDHeader = "X-User-ID"
	// UserIDLocalKey is the key used to store the caller id in Fiber's context locals.
	UserIDLocalKey = "user_id"
	// DefaultUserID is assumed when the header is absent or malformed.
	DefaultUserID int64 = 1
)

// CurrentUser resolves the caller identity for downstream handlers.
//
// Behavior:
// - Reads X-User-ID from the incoming request header.
// - Falls back to DefaultUserID when missing or not an integer.
// - Stores the value in Fiber context locals under UserIDLocalKey.
func CurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := DefaultUserID
		if raw := c.Get(UserIDHeader); raw != "" {
			if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
				id = parsed
			}
		}
		c.Locals(UserIDLocalKey, id)
		return c.Next()
	}
}
