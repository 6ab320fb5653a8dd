package models

import "time"

type ApiKey struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"createdAt"`
}
