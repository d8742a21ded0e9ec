package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
	"go-tailorshop/pkg/jwt"
)

// RequireAuth validates the bearer token and sets staff info in context
func RequireAuth(staffRepo repository.StaffRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// The account may have been deleted since the token was issued
		staff, err := staffRepo.FindByID(claims.ShopID, claims.StaffID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Account no longer exists"})
		}

		c.Locals("staff_id", staff.ID)
		c.Locals("shop_id", staff.ShopID)
		c.Locals("role", staff.Role)
		c.Locals("staff_name", staff.Name)
		c.Locals("username", staff.Username)

		return c.Next()
	}
}

// RequireRole checks that the authenticated staff member has the given role
func RequireRole(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got, ok := c.Locals("role").(model.Role)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}
		if got != role {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires " + string(role) + " role"})
		}
		return c.Next()
	}
}

// StaffID returns the authenticated staff member's id from context.
func StaffID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("staff_id").(uuid.UUID)
	return id
}

// ShopID returns the authenticated staff member's shop id from context.
func ShopID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("shop_id").(uuid.UUID)
	return id
}

// StaffName returns the authenticated staff member's display name.
func StaffName(c *fiber.Ctx) string {
	name, _ := c.Locals("staff_name").(string)
	return name
}

// StaffRole returns the authenticated staff member's role.
func StaffRole(c *fiber.Ctx) model.Role {
	role, _ := c.Locals("role").(model.Role)
	return role
}
