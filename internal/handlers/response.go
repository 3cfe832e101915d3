package handlers

import (
	"errors"

	"catalog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Error codes reported in the "error" field of failure bodies.
const (
	codeInvalidInput = "invalid_input"
	codeNotFound     = "not_found"
	codeInternal     = "internal_error"
)

// respondError maps a service error onto a status code and a JSON body.
func respondError(c *fiber.Ctx, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   codeInvalidInput,
			"message": verr.Error(),
			"field":   verr.Field,
		})
	case errors.Is(err, models.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   codeInvalidInput,
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   codeNotFound,
			"message": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   codeInternal,
			"message": err.Error(),
		})
	}
}
