package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LocalsUserID is the fiber.Ctx locals key under which the middleware stores
// the authenticated caller's author identifier.
const LocalsUserID = "user_id"

// BearerUserID resolves the caller identity from a Bearer token into the
// request locals. Requests without a token continue as anonymous; operations
// that require authentication reject those themselves.
func BearerUserID(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return c.Next()
		}

		claims, err := ValidateToken(secret, strings.TrimSpace(header[len("bearer "):]))
		if err != nil {
			// A present but broken token is an error, not anonymity.
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(LocalsUserID, claims.UserID)
		return c.Next()
	}
}

// UserID extracts the authenticated caller id from the request, or "" when
// the request is anonymous.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsUserID).(string)
	return id
}
