package handlers

import (
	"strings"

	"dukaan/internal/domain"
	applog "dukaan/internal/log"
	"dukaan/internal/services"

	"github.com/gofiber/fiber/v2"
)

// bearerToken pulls the token out of an "Authorization: Bearer <token>"
// header. Missing or malformed headers yield "".
func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireUser guards endpoints that need a resolvable identity. Missing or
// unverifiable tokens fail the request with 401.
func RequireUser(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return message(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		claims, err := tokens.Verify(tok)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return message(c, fiber.StatusUnauthorized, "Invalid token")
		}
		c.Locals("claims", claims)
		return c.Next()
	}
}

// RequireAdmin additionally checks the admin role embedded in the token.
func RequireAdmin(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return message(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		claims, err := tokens.Verify(tok)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return message(c, fiber.StatusUnauthorized, "Invalid token")
		}
		if claims.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": claims.UserID})
			return message(c, fiber.StatusForbidden, "Access denied")
		}
		c.Locals("claims", claims)
		return c.Next()
	}
}
