package models

import (
	"encoding/json"
	"time"
)

// PostContent is the payload published when a schedule fires.
type PostContent struct {
	Content   string   `json:"content"`
	Platforms []string `json:"platforms"`
	Images    []string `json:"images"`
	Hashtags  []string `json:"hashtags"`
}

// SchedulePost is a post queued for publication at a fixed instant.
// Recurring is accepted and echoed back but never interpreted.
type SchedulePost struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	Post          PostContent     `json:"post"`
	ScheduledTime time.Time       `json:"scheduledTime"`
	Recurring     json.RawMessage `json:"recurring"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	PublishedAt   *time.Time      `json:"publishedAt"`
	Error         *string         `json:"error"`
}

const (
	ScheduleStatusScheduled = "scheduled"
	ScheduleStatusPublished = "published"
	ScheduleStatusFailed    = "failed"
	ScheduleStatusCancelled = "cancelled"
)

// OptimalTimeSlot is a reference posting time with its expected engagement score.
type OptimalTimeSlot struct {
	Time       string `json:"time"`
	Engagement int    `json:"engagement"`
}

type OptimalTimes struct {
	Weekdays []OptimalTimeSlot `json:"weekdays"`
	Weekends []OptimalTimeSlot `json:"weekends"`
}
