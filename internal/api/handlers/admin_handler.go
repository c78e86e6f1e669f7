package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lucky-tours-api/domain"
	"lucky-tours-api/internal/api/presenters"
	"lucky-tours-api/pkg/admin"
)

type (
	AdminHandler interface {
		GetDashboard(c *fiber.Ctx) error
		GetUserDetail(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService admin.AdminService
	}
)

func NewAdminHandler(adminService admin.AdminService) AdminHandler {
	return &adminHandler{
		adminService: adminService,
	}
}

func (h *adminHandler) GetDashboard(c *fiber.Ctx) error {
	res, err := h.adminService.GetDashboard(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *adminHandler) GetUserDetail(c *fiber.Ctx) error {
	id := c.Params("id")

	res, err := h.adminService.GetUserDetail(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUsers, err)
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetUsers, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUserDetail)
}
