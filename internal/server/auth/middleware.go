package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sangamlabs/sangam/internal/common"
)

const userIDKey = "auth_user_id"

// Middleware validates bearer tokens on protected routes.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware around the token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication and stores the caller's user id in
// request locals.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return fmt.Errorf("%w: missing authorization header", common.ErrorUnauthorized)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return fmt.Errorf("%w: invalid authorization header", common.ErrorUnauthorized)
	}

	userID, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return fmt.Errorf("%w: invalid token", common.ErrorUnauthorized)
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

// UserIDFromContext retrieves the authenticated user's id.
func UserIDFromContext(c *fiber.Ctx) (int64, bool) {
	val := c.Locals(userIDKey)
	if val == nil {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}
