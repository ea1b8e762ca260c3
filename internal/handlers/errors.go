package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"billing/internal/apperrors"
)

// respondError maps the service error taxonomy onto HTTP responses:
// validation failures list every violated field, not-found names the
// resource, gateway failures stay generic so no provider internals leak.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFoundErr.Error(),
		})
	}

	var gatewayErr *apperrors.GatewayError
	if errors.As(err, &gatewayErr) {
		log.Printf("Payment gateway error: %v", gatewayErr)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Payment service is currently unavailable",
		})
	}

	log.Printf("Unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
