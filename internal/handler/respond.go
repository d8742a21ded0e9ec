package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-tailorshop/pkg/apperr"
)

// respondErr maps a service error to its HTTP status. Anything unclassified
// is a 500 with a generic body so internals never leak to clients.
func respondErr(c *fiber.Ctx, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case apperr.KindNotFound:
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case apperr.KindConflict, apperr.KindState:
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := parseUUID(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
