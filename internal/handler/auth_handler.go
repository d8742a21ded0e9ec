package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/service"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type loginRequest struct {
	ShopID   string `json:"shop_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterShop creates a shop together with its first admin account.
func (h *AuthHandler) RegisterShop(c *fiber.Ctx) error {
	var req service.RegisterShopRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	resp, err := h.service.RegisterShop(&req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Shop registered", "data": resp})
}

// LookupShop resolves a shop code to its id so login forms can target a shop.
func (h *AuthHandler) LookupShop(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing shop code"})
	}

	shop, err := h.service.LookupShop(code)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(shop)
}

// Login returns a handler bound to one role. Each portal logs in through
// its own endpoint so a tailor cannot authenticate against the admin portal.
func (h *AuthHandler) Login(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}

		shopID, err := parseUUID(req.ShopID)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid shop ID"})
		}

		resp, err := h.service.Login(shopID, role, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
			}
			return respondErr(c, err)
		}
		return c.JSON(resp)
	}
}
