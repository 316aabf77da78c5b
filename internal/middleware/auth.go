// Package middleware provides the HTTP middleware chain: bearer-token
// authentication, request logging, and Prometheus metrics.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tallyhq/tally/internal/auth"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// userIDKey is the fiber.Ctx locals key for the authenticated user ID.
const userIDKey = "user_id"

// UserID extracts the authenticated user ID from the request context.
// Returns empty string if not set.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(userIDKey).(string)
	return userID
}

// RequireAuth validates the bearer token on every request and stores
// the authenticated user ID in the request locals. On first sight of
// an identity it mirrors the user row into storage so entries and
// splits always have a user to reference.
func RequireAuth(jwtManager *auth.JWTManager, store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": auth.ErrMissingToken.Error()})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": auth.ErrInvalidToken.Error()})
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": auth.ErrInvalidToken.Error()})
		}

		user := &models.User{
			ID:          claims.UserID,
			Username:    claims.Username,
			Email:       claims.Email,
			DisplayName: claims.Name,
		}
		if err := store.UpsertUser(c.Context(), user); err != nil {
			slog.Error("Failed to mirror authenticated user", "user_id", claims.UserID, "error", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}

		c.Locals(userIDKey, claims.UserID)
		return c.Next()
	}
}
