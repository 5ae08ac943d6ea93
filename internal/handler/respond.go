package handler

import (
	"github.com/prishaadesai/jewelry-backend/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail maps a service error to the taxonomy status and a JSON body.
// Untyped errors surface as a generic 500 so driver details never leak.
func fail(c *fiber.Ctx, err error) error {
	code := apperror.StatusCode(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "internal server error"
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}

// currentUserID reads the authenticated user's ID set by RequireAuth
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("missing authenticated user")
	}
	return uuid.Parse(raw)
}
