package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kolade-dev/filingdesk/internal/domain"
	"github.com/kolade-dev/filingdesk/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps the typed domain outcomes onto HTTP statuses.
// Anything unrecognized is an internal failure and its detail stays private.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		return apiError(c, status, "internal error")
	}
	return apiError(c, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrSelfDeletion):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnknownPrincipal),
		errors.Is(err, domain.ErrChallengeInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateRecord):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
