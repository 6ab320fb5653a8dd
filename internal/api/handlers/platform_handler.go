package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"postdeck/internal/service"
	"postdeck/internal/transfer"
)

type PlatformHandler struct {
	s        service.PlatformService
	validate *validator.Validate
}

func NewPlatformHandler(s service.PlatformService, validate *validator.Validate) *PlatformHandler {
	return &PlatformHandler{s: s, validate: validate}
}

func (h *PlatformHandler) Available(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.Available())
}

func (h *PlatformHandler) Connected(c *fiber.Ctx) error {
	userID := GetUserID(c)

	accounts, err := h.s.Connected(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(accounts)
}

func (h *PlatformHandler) Connect(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.PlatformConnection
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "platform and account name are required",
		})
	}

	account, err := h.s.Connect(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Platform connected successfully",
		"platform": account,
	})
}

func (h *PlatformHandler) Disconnect(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid account id"})
	}

	if err := h.s.Disconnect(c.Context(), userID, int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Platform disconnected successfully"})
}
