package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/kudipay/internal/billing"
)

// failureStatus maps classified billing failures onto HTTP statuses for the
// mobile client.
func failureStatus(kind billing.FailureKind) int {
	switch kind {
	case billing.FailAuthRequired, billing.FailSessionExpired:
		return fiber.StatusUnauthorized
	case billing.FailValidation, billing.FailPinFormat:
		return fiber.StatusBadRequest
	case billing.FailPinRejected, billing.FailAccountLocked:
		return fiber.StatusForbidden
	case billing.FailInsufficientBalance:
		return fiber.StatusPaymentRequired
	case billing.FailServiceUnavailable:
		return fiber.StatusServiceUnavailable
	case billing.FailNetworkUnreachable, billing.FailServerError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError renders a classified failure, or falls back to a plain 500.
func respondError(c *fiber.Ctx, err error) error {
	if failure, ok := billing.AsFailure(err); ok {
		return c.Status(failureStatus(failure.Kind)).JSON(fiber.Map{
			"success": false,
			"kind":    failure.Kind,
			"message": failure.Message,
		})
	}

	return err
}
