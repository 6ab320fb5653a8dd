package transfer

import (
	"encoding/json"

	"postdeck/internal/models"
)

// ScheduleCreation mirrors the dashboard's schedule form. ScheduledTime is an
// ISO-8601 timestamp.
type ScheduleCreation struct {
	Content       string          `json:"content" validate:"required"`
	Platforms     []string        `json:"platforms" validate:"required,min=1"`
	ScheduledTime string          `json:"scheduledTime" validate:"required"`
	Images        []string        `json:"images"`
	Hashtags      []string        `json:"hashtags"`
	Recurring     json.RawMessage `json:"recurring"`
}

// ScheduleUpdate carries optional replacements; nil fields are left untouched.
type ScheduleUpdate struct {
	Content       *string         `json:"content"`
	Platforms     []string        `json:"platforms"`
	ScheduledTime *string         `json:"scheduledTime"`
	Images        []string        `json:"images"`
	Hashtags      []string        `json:"hashtags"`
	Recurring     json.RawMessage `json:"recurring"`
}

type CalendarView struct {
	Month     int                               `json:"month"`
	Year      int                               `json:"year"`
	Schedules map[string][]*models.SchedulePost `json:"schedules"`
}
