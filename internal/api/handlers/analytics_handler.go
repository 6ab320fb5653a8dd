package handlers

import (
	"github.com/gofiber/fiber/v2"

	"postdeck/internal/service"
)

type AnalyticsHandler struct {
	s service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{s: s}
}

func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	userID := GetUserID(c)

	analytics, err := h.s.Dashboard(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(analytics)
}

func (h *AnalyticsHandler) Platform(c *fiber.Ctx) error {
	userID := GetUserID(c)
	platform := c.Params("platform")

	analytics, err := h.s.Platform(c.Context(), userID, platform)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(analytics)
}

func (h *AnalyticsHandler) Post(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid post id"})
	}

	analytics, err := h.s.Post(c.Context(), userID, int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(analytics)
}
