package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/repository"
	"lostfound-backend/internal/service"
)

type ItemHandler struct {
	itemService   service.ItemService
	reportService service.ReportService
}

func NewItemHandler(itemService service.ItemService, reportService service.ReportService) *ItemHandler {
	return &ItemHandler{
		itemService:   itemService,
		reportService: reportService,
	}
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	input := domain.CreateItemInput{
		Type:        domain.ItemType(c.FormValue("item_type")),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Date:        c.FormValue("date"),
		Location:    c.FormValue("location"),
		Visibility:  domain.Visibility(c.FormValue("visibility")),
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.BadRequest("Image is required")
	}
	if file.Size > service.MaxUploadBytes {
		return middleware.PayloadTooLarge("Image must be 5MB or less")
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read image")
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, service.MaxUploadBytes+1))
	if err != nil {
		return middleware.BadRequest("Failed to read image")
	}
	if int64(len(data)) > service.MaxUploadBytes {
		return middleware.PayloadTooLarge("Image must be 5MB or less")
	}

	item, err := h.itemService.Create(c.Context(), user, input, data, file.Filename)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return middleware.BadRequest(err.Error())
		}
		if errors.Is(err, service.ErrStorageUnavailable) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Image storage is unavailable")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *ItemHandler) Feed(c *fiber.Ctx) error {
	viewer := middleware.GetCurrentUser(c)

	feed, err := h.itemService.Feed(c.Context(), viewer)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(feed)
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	viewer := middleware.GetCurrentUser(c)

	detail, err := h.itemService.Get(c.Context(), viewer, id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return middleware.NotFound("Item not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	var input domain.UpdateItemInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	item, err := h.itemService.Update(c.Context(), user, id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, service.ErrItemNotFound):
			return middleware.NotFound("Item not found")
		case errors.Is(err, service.ErrNotOwner):
			return middleware.Forbidden("You can only edit your own items")
		case errors.Is(err, service.ErrActiveClaim):
			return middleware.Conflict("Item has an active claim")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	if err := h.itemService.Delete(c.Context(), user, id); err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			return middleware.NotFound("Item not found")
		case errors.Is(err, service.ErrNotOwner):
			return middleware.Forbidden("You can only delete your own items")
		case errors.Is(err, service.ErrActiveClaim):
			return middleware.Conflict("Item has an active claim")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Item deleted"})
}

func (h *ItemHandler) Report(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	var input domain.CreateReportInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	autoHidden, err := h.reportService.File(c.Context(), user, id, input.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return middleware.BadRequest("Invalid report reason")
		case errors.Is(err, service.ErrItemNotFound):
			return middleware.NotFound("Item not found")
		case errors.Is(err, service.ErrOwnReport):
			return middleware.Forbidden("You cannot report your own item")
		case errors.Is(err, repository.ErrDuplicateReport):
			return middleware.Conflict("You have already reported this item")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Report submitted",
		"auto_hidden": autoHidden,
	})
}
