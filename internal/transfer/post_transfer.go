package transfer

type PostCreation struct {
	Content       string   `json:"content" validate:"required"`
	Platforms     []string `json:"platforms" validate:"required,min=1"`
	ScheduledTime *string  `json:"scheduledTime"`
	Images        []string `json:"images"`
	Hashtags      []string `json:"hashtags"`
	Status        string   `json:"status"`
}

type PostUpdate struct {
	Content       *string  `json:"content"`
	Platforms     []string `json:"platforms"`
	ScheduledTime *string  `json:"scheduledTime"`
	Images        []string `json:"images"`
	Hashtags      []string `json:"hashtags"`
	Status        *string  `json:"status"`
}
