package models

import "time"

type User struct {
	ID             int64     `json:"id"`
	GoogleID       string    `json:"-"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PasswordHash   string    `json:"-"`
	PasswordSalt   string    `json:"-"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Settings struct {
	UserID           int64    `json:"userId"`
	Timezone         string   `json:"timezone"`
	DefaultPlatforms []string `json:"defaultPlatforms"`
}
