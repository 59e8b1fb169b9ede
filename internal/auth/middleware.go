package auth

import (
	"strings"

	"inventory-backend/internal/apperr"
	"inventory-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserRoleKey = "user_role"
)

const (
	msgNoToken      = "No token provided."
	msgInvalidToken = "Invalid token."
	msgForbidden    = "Forbidden: Insufficient permissions."
)

// Identity is the authenticated caller, as carried by the token.
type Identity struct {
	UserID string          `json:"userId"`
	Role   models.UserRole `json:"role"`
}

func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperr.Unauthorized(msgNoToken)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return apperr.Unauthorized(msgNoToken)
		}

		claims, err := ParseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			return &apperr.Error{Kind: apperr.KindUnauthorized, Message: msgInvalidToken, Err: err}
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
		if !ok {
			return apperr.Forbidden(msgForbidden)
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return apperr.Forbidden(msgForbidden)
	}
}

// CurrentIdentity returns the identity stored by JWTMiddleware.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	userID, ok := c.Locals(CtxUserIDKey).(string)
	if !ok || userID == "" {
		return Identity{}, false
	}
	role, _ := c.Locals(CtxUserRoleKey).(models.UserRole)
	return Identity{UserID: userID, Role: role}, true
}
