package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-tailorshop/internal/middleware"
	"go-tailorshop/internal/model"
	"go-tailorshop/internal/service"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var req service.InventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.Create(middleware.ShopID(c), middleware.StaffName(c), &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item created", "data": item.ToResponse()})
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(middleware.ShopID(c))
	if err != nil {
		return respondErr(c, err)
	}

	out := make([]model.InventoryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToResponse())
	}
	return c.JSON(out)
}

func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	itemID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req service.InventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.Update(middleware.ShopID(c), middleware.StaffName(c), itemID, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": item.ToResponse()})
}

func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	itemID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.service.Delete(middleware.ShopID(c), itemID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// Adjust applies a signed stock change from {"amount": n}. The sign comes
// from the route: /increment posts positive, /decrement negates.
func (h *InventoryHandler) Adjust(negate bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, ok := paramUUID(c, "id")
		if !ok {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
		}

		var body struct {
			Amount int `json:"amount"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}
		if body.Amount <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Amount must be positive"})
		}

		delta := body.Amount
		if negate {
			delta = -delta
		}

		item, err := h.service.Adjust(middleware.ShopID(c), itemID, delta)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(fiber.Map{"message": "Quantity updated", "data": item.ToResponse()})
	}
}
