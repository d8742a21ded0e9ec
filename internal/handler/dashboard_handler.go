package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-tailorshop/internal/middleware"
	"go-tailorshop/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) AdminStats(c *fiber.Ctx) error {
	stats, err := h.service.AdminStats(middleware.ShopID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) TailorDashboard(c *fiber.Ctx) error {
	dash, err := h.service.TailorDashboard(middleware.ShopID(c), middleware.StaffID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dash)
}

func (h *DashboardHandler) CuttingMasterDashboard(c *fiber.Ctx) error {
	dash, err := h.service.CuttingMasterDashboard(middleware.ShopID(c), middleware.StaffID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dash)
}
