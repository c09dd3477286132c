package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/gamevault/internal/services"
)

// mapServiceError converts a service failure into the matching HTTP error.
// Unrecognized errors pass through and become a 500.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrAuthenticationRequired):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrGameNotFound), errors.Is(err, services.ErrNotInLibrary):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyInCart),
		errors.Is(err, services.ErrAlreadyOwned),
		errors.Is(err, services.ErrAlreadyWishlisted):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidPaymentDetails):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrProfileIncomplete):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return err
}
