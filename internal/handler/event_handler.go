package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/middleware"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service"
	"github.com/sefazor/campus-events-backend/pkg/qrcode"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
)

type EventHandler struct {
	eventService *service.EventService
	qrService    *qrcode.QRService
	links        *service.Links
	validator    *utils.Validator
	logger       *zap.Logger
}

func NewEventHandler(eventService *service.EventService, qrService *qrcode.QRService, links *service.Links, validator *utils.Validator, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		qrService:    qrService,
		links:        links,
		validator:    validator,
		logger:       logger,
	}
}

// ListEvents returns every event, or one organization's events with
// ?org_id=.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	var (
		events []models.Event
		err    error
	)
	if orgID := c.Query("org_id"); orgID != "" {
		events, err = h.eventService.ListByOrganization(c.UserContext(), orgID)
	} else {
		events, err = h.eventService.ListAll(c.UserContext())
	}
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.eventService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(event, ""))
}

// QRCode renders the public link of an event as a PNG.
func (h *EventHandler) QRCode(c *fiber.Ctx) error {
	event, err := h.eventService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	png, err := h.qrService.GeneratePNG(h.links.EventURL(event.ID), c.QueryInt("size", qrcode.DefaultSize))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(png)
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	event, err := h.eventService.Create(c.UserContext(), middleware.PrincipalFrom(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	var req models.UpdateEventRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	event, err := h.eventService.Update(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.eventService.Delete(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Event successfully deleted"))
}
