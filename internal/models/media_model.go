package models

import "time"

type MediaAsset struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	FileName  string    `json:"fileName"`
	FileType  string    `json:"fileType"`
	FileSize  int64     `json:"fileSize"`
	FileURL   string    `json:"fileUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
