package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-tailorshop/internal/middleware"
	"go-tailorshop/internal/model"
	"go-tailorshop/internal/service"
)

type CustomerHandler struct {
	service service.CustomerService
}

func NewCustomerHandler(s service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req service.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customer, err := h.service.Create(middleware.ShopID(c), middleware.StaffName(c), &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": customer})
}

// List supports phone search via ?phone=. Non-digit characters in the
// query are ignored so formatted numbers still match.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.service.List(middleware.ShopID(c), c.Query("phone"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	customerID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	customer, err := h.service.Get(middleware.ShopID(c), customerID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	customerID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var req service.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customer, err := h.service.Update(middleware.ShopID(c), middleware.StaffName(c), customerID, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "data": customer})
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	customerID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	if err := h.service.Delete(middleware.ShopID(c), customerID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer and their orders deleted"})
}

func (h *CustomerHandler) ReplaceMeasurements(c *fiber.Ctx) error {
	customerID, ok := paramUUID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var body struct {
		Measurements []model.Measurement `json:"measurements"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customer, err := h.service.ReplaceMeasurements(middleware.ShopID(c), customerID, body.Measurements)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Measurements updated", "data": customer})
}
