package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/middleware"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
)

type OrganizationHandler struct {
	organizationService *service.OrganizationService
	eventService        *service.EventService
	validator           *utils.Validator
	logger              *zap.Logger
}

func NewOrganizationHandler(organizationService *service.OrganizationService, eventService *service.EventService, validator *utils.Validator, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		organizationService: organizationService,
		eventService:        eventService,
		validator:           validator,
		logger:              logger,
	}
}

func (h *OrganizationHandler) ListOrganizations(c *fiber.Ctx) error {
	orgs, err := h.organizationService.ListAll(c.UserContext(), middleware.PrincipalFrom(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(orgs, ""))
}

func (h *OrganizationHandler) FilterOptions(c *fiber.Ctx) error {
	options, err := h.organizationService.ListForFilter(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(options, ""))
}

func (h *OrganizationHandler) GetOrganization(c *fiber.Ctx) error {
	org, err := h.organizationService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(org, ""))
}

func (h *OrganizationHandler) OrganizationEvents(c *fiber.Ctx) error {
	org, err := h.organizationService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	events, err := h.eventService.ListByOrganization(c.UserContext(), org.ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

// Provision returns the temporary password once; it is not stored in
// plain text anywhere.
func (h *OrganizationHandler) Provision(c *fiber.Ctx) error {
	var req models.ProvisionOrganizationRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.organizationService.Provision(c.UserContext(), middleware.PrincipalFrom(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "Organization created successfully"))
}

func (h *OrganizationHandler) UpdateOrganization(c *fiber.Ctx) error {
	var req models.UpdateOrganizationRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	org, err := h.organizationService.UpdateProfile(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(org, "Organization updated successfully"))
}

func (h *OrganizationHandler) DeleteOrganization(c *fiber.Ctx) error {
	if err := h.organizationService.Delete(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Organization deleted"))
}
