package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kudipay/internal/config"
	"github.com/example/kudipay/internal/utils"
)

const (
	userContextKey  = "currentUserID"
	tokenContextKey = "currentBearer"
)

// AuthMiddleware validates JWT tokens and loads the authenticated user ID and
// raw bearer into context. The bearer is kept because user-level billing
// calls are made under the caller's own credential at the provider.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, userID)
		c.Locals(tokenContextKey, parts[1])
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return uuid.Nil, false
	}

	if id, ok := value.(uuid.UUID); ok {
		return id, true
	}

	return uuid.Nil, false
}

// GetCurrentBearer returns the raw bearer token for the request.
func GetCurrentBearer(c *fiber.Ctx) string {
	if token, ok := c.Locals(tokenContextKey).(string); ok {
		return token
	}
	return ""
}
