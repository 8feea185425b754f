package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/service"
)

type ProfileHandler struct {
	userService service.UserService
	itemService service.ItemService
}

func NewProfileHandler(userService service.UserService, itemService service.ItemService) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		itemService: itemService,
	}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *ProfileHandler) SetHostel(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.SetHostelInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.SetHostel(c.Context(), user.ID, input.Hostel); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return middleware.BadRequest("Hostel must be 'boys' or 'girls'")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Hostel updated"})
}

func (h *ProfileHandler) GetMyItems(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	feed, err := h.itemService.FeedForUser(c.Context(), user, user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(feed)
}

func (h *ProfileHandler) GetPublicProfile(c *fiber.Ctx) error {
	publicID := c.Params("publicId")
	if publicID == "" {
		return middleware.BadRequest("Invalid user ID")
	}

	target, err := h.userService.GetByPublicID(c.Context(), publicID)
	if err != nil {
		return err
	}
	if target == nil {
		return middleware.NotFound("User not found")
	}

	viewer := middleware.GetCurrentUser(c)

	feed, err := h.itemService.FeedForUser(c.Context(), viewer, target)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": domain.PublicProfile{
			Name:      target.Name,
			Email:     target.Email,
			Image:     target.Image,
			CreatedAt: target.CreatedAt,
		},
		"items": feed,
	})
}
