package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-tailorshop/internal/middleware"
	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
	"go-tailorshop/internal/service"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func actor(c *fiber.Ctx) service.Actor {
	return service.Actor{ID: middleware.StaffID(c), Role: middleware.StaffRole(c)}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.Create(middleware.ShopID(c), actor(c), middleware.StaffName(c), &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Order created", "data": order.ToResponse()})
}

// List supports ?status=, ?active=true and ?customer_id= filters.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var filter repository.OrderFilter

	if s := c.Query("status"); s != "" {
		status := model.OrderStatus(s)
		filter.Status = &status
	}
	filter.ActiveOnly = c.Query("active") == "true"
	if cid := c.Query("customer_id"); cid != "" {
		customerID, err := parseUUID(cid)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
		}
		filter.CustomerID = &customerID
	}

	orders, err := h.service.List(middleware.ShopID(c), filter)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(orderResponses(orders))
}

// ListAssignedToTailor lists the active orders assigned to the caller.
func (h *OrderHandler) ListAssignedToTailor(c *fiber.Ctx) error {
	staffID := middleware.StaffID(c)
	orders, err := h.service.List(middleware.ShopID(c), repository.OrderFilter{
		ActiveOnly:       true,
		AssignedTailorID: &staffID,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(orderResponses(orders))
}

// ListAssignedToCuttingMaster lists the active orders assigned to the caller.
func (h *OrderHandler) ListAssignedToCuttingMaster(c *fiber.Ctx) error {
	staffID := middleware.StaffID(c)
	orders, err := h.service.List(middleware.ShopID(c), repository.OrderFilter{
		ActiveOnly:              true,
		AssignedCuttingMasterID: &staffID,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(orderResponses(orders))
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orderID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.Get(middleware.ShopID(c), actor(c), orderID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(order.ToResponse())
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	orderID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req service.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.Update(middleware.ShopID(c), middleware.StaffName(c), orderID, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order updated", "data": order.ToResponse()})
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	orderID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	if err := h.service.Delete(middleware.ShopID(c), orderID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var body struct {
		Status   model.OrderStatus `json:"status"`
		PhotoURL string            `json:"photo_url"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.UpdateStatus(middleware.ShopID(c), actor(c), orderID, body.Status, body.PhotoURL)
	if err != nil {
		return respondErr(c, err)
	}

	msg := "Status updated"
	if order.PendingApproval {
		msg = "Photo submitted for admin approval"
	}
	return c.JSON(fiber.Map{"message": msg, "data": order.ToResponse()})
}

// ResolveApproval commits or discards a tailor's pending ready photo.
func (h *OrderHandler) ResolveApproval(c *fiber.Ctx) error {
	orderID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var body struct {
		Approved bool `json:"approved"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.ApprovePending(middleware.ShopID(c), orderID, body.Approved)
	if err != nil {
		return respondErr(c, err)
	}

	msg := "Photo rejected"
	if body.Approved {
		msg = "Photo approved, order ready for pickup"
	}
	return c.JSON(fiber.Map{"message": msg, "data": order.ToResponse()})
}

func (h *OrderHandler) SetCuttingStatus(c *fiber.Ctx) error {
	orderID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var body struct {
		CuttingStatus model.CuttingStatus `json:"cutting_status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.SetCuttingStatus(middleware.ShopID(c), actor(c), orderID, body.CuttingStatus)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cutting status updated", "data": order.ToResponse()})
}

// AssignTailor sets or clears the order's tailor. A null tailor_id unassigns.
func (h *OrderHandler) AssignTailor(c *fiber.Ctx) error {
	orderID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var body struct {
		TailorID *uuid.UUID `json:"tailor_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.AssignTailor(middleware.ShopID(c), actor(c), orderID, body.TailorID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tailor assignment updated", "data": order.ToResponse()})
}

func (h *OrderHandler) AssignCuttingMaster(c *fiber.Ctx) error {
	orderID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var body struct {
		CuttingMasterID *uuid.UUID `json:"cutting_master_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.AssignCuttingMaster(middleware.ShopID(c), orderID, body.CuttingMasterID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cutting master assignment updated", "data": order.ToResponse()})
}

func (h *OrderHandler) BulkAssignTailor(c *fiber.Ctx) error {
	var body struct {
		OrderIDs []uuid.UUID `json:"order_ids"`
		TailorID uuid.UUID   `json:"tailor_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	modified, err := h.service.BulkAssignTailor(middleware.ShopID(c), body.OrderIDs, body.TailorID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Orders assigned", "modified_count": modified})
}

func orderResponses(orders []model.Order) []model.OrderResponse {
	out := make([]model.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orders[i].ToResponse())
	}
	return out
}
