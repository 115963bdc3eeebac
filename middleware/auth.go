package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tom73737/non-zero-days-app-jkqfrv/services"
	"github.com/tom73737/non-zero-days-app-jkqfrv/utils"
)

const SessionCookieName = "nonzero_session"

// AuthRequired resolves the session token to a trusted user ID and stores
// it in the request context. Requests without a valid session get 401.
func AuthRequired(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		session, err := sessions.VerifyToken(token)
		if err != nil {
			slog.Debug("Auth required: invalid session", slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		c.Locals("user_id", session.UserID)
		return c.Next()
	}
}

// extractToken reads the session token from the Authorization header,
// falling back to the session cookie for browser clients.
func extractToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Cookies(SessionCookieName)
}
