package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var input domain.GoogleAuthInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.IDToken == "" {
		return middleware.BadRequest("id_token is required")
	}

	token, err := h.authService.GoogleLogin(c.Context(), input.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoogleToken) {
			return middleware.Unauthorized("Invalid Google ID token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(token)
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input domain.RefreshTokenInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Token == "" {
		return middleware.BadRequest("token is required")
	}

	token, err := h.authService.Refresh(c.Context(), input.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return middleware.Unauthorized("Invalid or expired token")
		}
		if errors.Is(err, service.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(token)
}
