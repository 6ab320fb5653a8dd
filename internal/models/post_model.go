package models

import "time"

type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
	Clicks   int `json:"clicks"`
}

type Post struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	Content       string     `json:"content"`
	Platforms     []string   `json:"platforms"`
	ScheduledTime *time.Time `json:"scheduledTime"`
	Images        []string   `json:"images"`
	Hashtags      []string   `json:"hashtags"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	PublishedAt   *time.Time `json:"publishedAt"`
	Engagement    Engagement `json:"engagement"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)
