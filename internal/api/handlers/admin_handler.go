package handlers

import (
	"campuscook/domain"
	"campuscook/internal/api/presenters"
	"campuscook/pkg/admin"

	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetDashboard(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService admin.AdminService
	}
)

func NewAdminHandler(adminService admin.AdminService) AdminHandler {
	return &adminHandler{adminService: adminService}
}

func (h *adminHandler) GetDashboard(c *fiber.Ctx) error {
	res, err := h.adminService.GetDashboard(c.UserContext())
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedGetDashboard)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
