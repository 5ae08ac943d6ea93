package middleware

import (
	"strings"

	"github.com/prishaadesai/jewelry-backend/internal/model"
	"github.com/prishaadesai/jewelry-backend/internal/repository"
	"github.com/prishaadesai/jewelry-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token, resolves the account against the
// database, and sets user info in the request context
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Resolve the current account state; a deactivated user keeps a
		// syntactically valid token until expiry
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		// Role comes from the database row, not the token, so role changes
		// take effect without re-login
		c.Locals("user_id", user.ID.String())
		c.Locals("username", user.Username)
		c.Locals("role", string(user.Role))

		return c.Next()
	}
}

// RequireOwner gates owner-only endpoints
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role != string(model.RoleOwner) {
			return c.Status(403).JSON(fiber.Map{"error": "Not authorized"})
		}
		return c.Next()
	}
}

// RequireWorker gates worker-only endpoints (any of the four stage roles)
func RequireWorker() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || !model.Role(role).IsWorker() {
			return c.Status(403).JSON(fiber.Map{"error": "This endpoint is for workers only"})
		}
		return c.Next()
	}
}
