package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logging logs every request with method, path, status, user, and
// duration. Errors returned by handlers are logged at Warn since the
// error mapping already decided the response.
func Logging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"user_id", UserID(c),
			"duration_ms", time.Since(start).Milliseconds(),
		}

		switch {
		case err != nil:
			slog.Warn("Request failed", append(attrs, "error", err)...)
		case status >= 500:
			slog.Error("Request errored", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}

		return err
	}
}
