// Package handler exposes the ledger operations over a JSON HTTP API.
// Handlers parse and render; all rules live in the service layer.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tallyhq/tally/internal/ledger"
)

// respondError maps domain errors to HTTP status codes. Validation
// failures are client-correctable (400), authorization failures are
// surfaced as-is (403), missing references are 404, and anything else
// (including storage integrity failures) is a 500.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr    *ledger.ValidationError
		authorizationErr *ledger.AuthorizationError
		notFoundErr      *ledger.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.As(err, &authorizationErr):
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": authorizationErr.Error()})
	case errors.As(err, &notFoundErr):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Error()})
	default:
		slog.Error("Unhandled error", "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
