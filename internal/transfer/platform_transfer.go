package transfer

type PlatformConnection struct {
	Platform    string `json:"platform" validate:"required"`
	AccountName string `json:"accountName" validate:"required"`
	AccountID   string `json:"accountId"`
	AccessToken string `json:"accessToken"`
}

type SettingsUpdate struct {
	Timezone         *string  `json:"timezone"`
	DefaultPlatforms []string `json:"defaultPlatforms"`
}
