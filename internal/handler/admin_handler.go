package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/service"
)

type AdminHandler struct {
	moderationService service.ModerationService
}

func NewAdminHandler(moderationService service.ModerationService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService}
}

func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.moderationService.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *AdminHandler) GetActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	activity, err := h.moderationService.Activity(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"activities": activity})
}

func (h *AdminHandler) GetClaims(c *fiber.Ctx) error {
	var status *domain.ResolutionStatus
	if s := c.Query("status"); s != "" {
		rs := domain.ResolutionStatus(s)
		if !rs.IsValid() {
			return middleware.BadRequest("Invalid claim status")
		}
		status = &rs
	}
	limit := c.QueryInt("limit", 50)

	claims, err := h.moderationService.Claims(c.Context(), status, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"claims": claims})
}

func (h *AdminHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.moderationService.Users(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

func (h *AdminHandler) GetReportedItems(c *fiber.Ctx) error {
	items, err := h.moderationService.ReportedItems(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"items": items})
}

func (h *AdminHandler) ModerateItem(c *fiber.Ctx) error {
	admin := middleware.GetCurrentUser(c)
	if admin == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	var input domain.ModerateItemInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.moderationService.ModerateItem(c.Context(), admin, id, input); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, service.ErrItemNotFound):
			return middleware.NotFound("Item not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Item moderated"})
}

func (h *AdminHandler) ModerateUser(c *fiber.Ctx) error {
	admin := middleware.GetCurrentUser(c)
	if admin == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	publicID := c.Params("userId")
	if publicID == "" {
		return middleware.BadRequest("Invalid user ID")
	}

	var input domain.ModerateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.moderationService.ModerateUser(c.Context(), admin, publicID, input); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User moderated"})
}
