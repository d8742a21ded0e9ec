package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-tailorshop/internal/service"
)

type TrackHandler struct {
	service service.TrackService
}

func NewTrackHandler(s service.TrackService) *TrackHandler {
	return &TrackHandler{service: s}
}

// Track is public: customers look up their active orders by phone number.
func (h *TrackHandler) Track(c *fiber.Ctx) error {
	var req service.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Track(&req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(result)
}
