package models

import "time"

// PlatformInfo describes a platform the dashboard can publish to.
type PlatformInfo struct {
	Name           string   `json:"name"`
	Icon           string   `json:"icon"`
	Color          string   `json:"color"`
	Features       []string `json:"features"`
	MaxCharacters  int      `json:"maxCharacters"`
	SupportedMedia []string `json:"supportedMedia"`
}

type AccountStats struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
	Posts     int `json:"posts"`
}

// ConnectedAccount is a user's linked platform account. AccessToken holds
// the AES-GCM encrypted credential, never the plaintext.
type ConnectedAccount struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"userId"`
	Platform    string       `json:"platform"`
	AccountName string       `json:"accountName"`
	AccountID   string       `json:"accountId"`
	AccessToken string       `json:"-"`
	ConnectedAt time.Time    `json:"connectedAt"`
	IsActive    bool         `json:"isActive"`
	LastSync    time.Time    `json:"lastSync"`
	Permissions []string     `json:"permissions"`
	Stats       AccountStats `json:"stats"`
}
