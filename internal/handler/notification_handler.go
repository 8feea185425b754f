package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	unreadOnly := c.QueryBool("unread_only", false)
	limit := c.QueryInt("limit", 20)

	notifications, err := h.notificationService.List(c.Context(), userID, unreadOnly, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"notifications": notifications})
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	count, err := h.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notificationService.MarkAsRead(c.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	if err := h.notificationService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "All notifications marked as read"})
}
