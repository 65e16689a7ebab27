// middleware/auth.go
package middleware

import (
	"context"
	"strings"

	"football-stats-api/logs"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier checks a bearer credential against the external identity
// service and returns the stable user id it belongs to.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// TokenAuth rejects the request with 401 unless the Authorization header
// carries a bearer token the verifier accepts. The verified user id is
// stored in c.Locals("user_id") for the handlers.
func TokenAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logs.Log.Warnf("🚫 [AUTH] missing Authorization header for %s %s", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token is missing!",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			logs.Log.Warnf("🚫 [AUTH] malformed Authorization header for %s %s", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token format is invalid!",
			})
		}

		userID, err := verifier.VerifyToken(c.Context(), parts[1])
		if err != nil {
			logs.Log.Warnf("❌ [AUTH] token rejected for %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token is invalid!",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
