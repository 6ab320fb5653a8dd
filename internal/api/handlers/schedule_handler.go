package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"postdeck/internal/service"
	"postdeck/internal/transfer"
)

type ScheduleHandler struct {
	s        service.ScheduleService
	validate *validator.Validate
}

func NewScheduleHandler(s service.ScheduleService, validate *validator.Validate) *ScheduleHandler {
	return &ScheduleHandler{s: s, validate: validate}
}

func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)

	schedules, err := h.s.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(schedules)
}

func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.ScheduleCreation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "content, platforms, and scheduled time are required",
		})
	}

	schedule, err := h.s.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Post scheduled successfully",
		"schedule": schedule,
	})
}

func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid schedule id"})
	}

	var req transfer.ScheduleUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	schedule, err := h.s.Update(c.Context(), userID, int64(id), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Scheduled post updated successfully",
		"schedule": schedule,
	})
}

func (h *ScheduleHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid schedule id"})
	}

	if err := h.s.Cancel(c.Context(), userID, int64(id)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Scheduled post cancelled successfully",
	})
}

func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid schedule id"})
	}

	schedule, err := h.s.Get(c.Context(), userID, int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(schedule)
}

func (h *ScheduleHandler) Upcoming(c *fiber.Ctx) error {
	userID := GetUserID(c)

	schedules, err := h.s.ListUpcoming(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(schedules)
}

func (h *ScheduleHandler) Calendar(c *fiber.Ctx) error {
	userID := GetUserID(c)
	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)

	view, err := h.s.Calendar(c.Context(), userID, month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *ScheduleHandler) OptimalTimes(c *fiber.Ctx) error {
	platform := c.Query("platform")

	times, ok := h.s.OptimalTimes(platform)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown platform"})
	}
	if platform != "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"platform": platform,
			"times":    times[platform],
		})
	}
	return c.Status(fiber.StatusOK).JSON(times)
}
