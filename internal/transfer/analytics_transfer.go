package transfer

type DailyMetrics struct {
	Date        string `json:"date"`
	Likes       int    `json:"likes"`
	Shares      int    `json:"shares"`
	Comments    int    `json:"comments"`
	Clicks      int    `json:"clicks"`
	Impressions int    `json:"impressions"`
}

type MetricTotals struct {
	Likes       int `json:"likes"`
	Shares      int `json:"shares"`
	Comments    int `json:"comments"`
	Clicks      int `json:"clicks"`
	Impressions int `json:"impressions"`
}

type PlatformMetrics struct {
	Followers  int    `json:"followers"`
	Engagement int    `json:"engagement"`
	Growth     string `json:"growth"`
}

type TopPost struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	Platform   string `json:"platform"`
	Engagement int    `json:"engagement"`
	Date       string `json:"date"`
}

type DashboardOverview struct {
	TotalPosts       int     `json:"totalPosts"`
	TotalEngagement  int     `json:"totalEngagement"`
	TotalImpressions int     `json:"totalImpressions"`
	EngagementRate   float64 `json:"engagementRate"`
}

type DashboardAnalytics struct {
	Overview           DashboardOverview          `json:"overview"`
	DailyData          []DailyMetrics             `json:"dailyData"`
	Totals             MetricTotals               `json:"totals"`
	PlatformData       map[string]PlatformMetrics `json:"platformData"`
	TopPerformingPosts []TopPost                  `json:"topPerformingPosts"`
}
