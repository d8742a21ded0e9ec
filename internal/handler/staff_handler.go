package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-tailorshop/internal/middleware"
	"go-tailorshop/internal/model"
	"go-tailorshop/internal/service"
)

type StaffHandler struct {
	service service.StaffService
}

func NewStaffHandler(s service.StaffService) *StaffHandler {
	return &StaffHandler{service: s}
}

// Create returns a handler bound to one staff role so the tailor and
// cutting-master routes share the implementation.
func (h *StaffHandler) Create(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.CreateStaffRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}

		staff, err := h.service.Create(middleware.ShopID(c), role, middleware.StaffName(c), &req)
		if err != nil {
			return respondErr(c, err)
		}
		return c.Status(201).JSON(fiber.Map{"message": "Staff account created", "data": staff.ToResponse()})
	}
}

func (h *StaffHandler) List(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		staff, err := h.service.List(middleware.ShopID(c), role)
		if err != nil {
			return respondErr(c, err)
		}

		out := make([]model.StaffResponse, 0, len(staff))
		for i := range staff {
			out = append(out, staff[i].ToResponse())
		}
		return c.JSON(out)
	}
}

func (h *StaffHandler) Delete(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		staffID, ok := paramUUID(c, "id")
		if !ok {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid staff ID"})
		}

		if err := h.service.Delete(middleware.ShopID(c), staffID, role); err != nil {
			return respondErr(c, err)
		}
		return c.JSON(fiber.Map{"message": "Staff account deleted"})
	}
}
