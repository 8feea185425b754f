package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/repository"
	"lostfound-backend/internal/service"
)

type ResolutionHandler struct {
	resolutionService service.ResolutionService
}

func NewResolutionHandler(resolutionService service.ResolutionService) *ResolutionHandler {
	return &ResolutionHandler{resolutionService: resolutionService}
}

func (h *ResolutionHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateResolutionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	resolution, err := h.resolutionService.Create(c.Context(), user, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, service.ErrItemNotFound):
			return middleware.NotFound("Item not found")
		case errors.Is(err, service.ErrNotFoundItem):
			return middleware.BadRequest("Only found items can be claimed")
		case errors.Is(err, service.ErrSelfClaim):
			return middleware.Forbidden("You cannot claim your own item")
		case errors.Is(err, repository.ErrItemResolved):
			return middleware.Conflict("Item already has an approved claim")
		case errors.Is(err, repository.ErrDuplicateClaim):
			return middleware.Conflict("You already have a pending claim on this item")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resolution)
}

func (h *ResolutionHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, func(user *domain.User, id uuid.UUID) error {
		return h.resolutionService.Approve(c.Context(), user, id)
	}, "Claim approved")
}

func (h *ResolutionHandler) Reject(c *fiber.Ctx) error {
	var input domain.RejectResolutionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	return h.decide(c, func(user *domain.User, id uuid.UUID) error {
		return h.resolutionService.Reject(c.Context(), user, id, input.RejectionReason)
	}, "Claim rejected")
}

func (h *ResolutionHandler) decide(c *fiber.Ctx, fn func(*domain.User, uuid.UUID) error, message string) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("resolutionId"))
	if err != nil {
		return middleware.BadRequest("Invalid resolution ID")
	}

	if err := fn(user, id); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, service.ErrResolutionNotFound):
			return middleware.NotFound("Resolution not found")
		case errors.Is(err, service.ErrNotFinder):
			return middleware.Forbidden("Only the item owner can decide this claim")
		case errors.Is(err, repository.ErrClaimDecided):
			return middleware.Conflict("Claim has already been decided")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

func (h *ResolutionHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("resolutionId"))
	if err != nil {
		return middleware.BadRequest("Invalid resolution ID")
	}

	view, err := h.resolutionService.GetForClaimant(c.Context(), user, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResolutionNotFound):
			return middleware.NotFound("Resolution not found")
		case errors.Is(err, service.ErrNotClaimant):
			return middleware.Forbidden("You are not the claimant of this resolution")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *ResolutionHandler) Review(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	view, err := h.resolutionService.GetForReview(c.Context(), user, itemID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			return middleware.NotFound("Item not found")
		case errors.Is(err, service.ErrNoPendingClaim):
			return middleware.NotFound("No pending claim for this item")
		case errors.Is(err, service.ErrNotFinder):
			return middleware.Forbidden("Only the item owner can review claims")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(view)
}
