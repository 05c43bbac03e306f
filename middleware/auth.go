package middleware

import (
	"strings"

	"employee_management/config"
	"employee_management/models"
	"employee_management/services"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

func extractToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token format")
	}

	return parts[1], nil
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.APIResponse{
		Success: false,
		Message: types.ErrUnauthorized,
		Error:   message,
	})
}

// RequireAuth verifies the bearer token and stores the caller in the request locals.
func RequireAuth(c *fiber.Ctx) error {
	token, err := extractToken(c)
	if err != nil {
		return unauthorized(c, err.Error())
	}

	principal, err := services.ParseToken(config.AppConfig.JWTSecret, token)
	if err != nil {
		return unauthorized(c, "Invalid or expired token")
	}

	c.Locals(principalKey, *principal)
	c.Locals("user_id", principal.ID)
	c.Locals("role", string(principal.Role))

	return c.Next()
}

func requireRole(role models.Role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentPrincipal(c).Role != role {
			return c.Status(fiber.StatusForbidden).JSON(types.APIResponse{
				Success: false,
				Message: types.ErrForbidden,
				Error:   message,
			})
		}
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
var RequireAdmin = requireRole(models.RoleAdmin, "Admin access required")

// RequireEmployee must run after RequireAuth.
var RequireEmployee = requireRole(models.RoleEmployee, "Employee access required")

// CurrentPrincipal returns the caller stored by RequireAuth, or the zero Principal.
func CurrentPrincipal(c *fiber.Ctx) services.Principal {
	principal, _ := c.Locals(principalKey).(services.Principal)
	return principal
}
