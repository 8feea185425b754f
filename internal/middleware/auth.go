package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/service"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

// AuthRequired authenticates the request via the Authorization bearer token
// and stores the loaded user in the request context. Banned users are turned
// away here so no authenticated endpoint needs its own ban check.
func AuthRequired(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveUser(c, authService)
		if err != nil {
			return err
		}

		if user.BanActive(time.Now().UTC()) {
			return Forbidden(banMessage(user))
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

// AuthOptional lets anonymous requests through but still rejects requests
// that present an invalid token. Banned users browse as anonymous.
func AuthOptional(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}

		user, err := resolveUser(c, authService)
		if err != nil {
			return err
		}

		if !user.BanActive(time.Now().UTC()) {
			c.Locals(UserContextKey, user)
			c.Locals(UserIDContextKey, user.ID)
		}

		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.IsAdmin() {
			return Forbidden("Admin access required")
		}

		return c.Next()
	}
}

func resolveUser(c *fiber.Ctx, authService service.AuthService) (*domain.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, Unauthorized("Missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, Unauthorized("Invalid authorization header format")
	}

	claims, err := authService.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, Unauthorized("Invalid or expired token")
	}

	user, err := authService.GetUserByPublicID(c.Context(), claims.Subject)
	if err != nil || user == nil {
		return nil, Unauthorized("User not found")
	}

	return user, nil
}

func banMessage(user *domain.User) string {
	if user.BanUntil == nil {
		return "Your account has been permanently banned"
	}
	return fmt.Sprintf("Your account is banned until %s", user.BanUntil.Format(time.RFC3339))
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
