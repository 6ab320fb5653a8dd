package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"postdeck/internal/models"
	"postdeck/internal/repository"
	"postdeck/internal/transfer"
)

// AnalyticsService fabricates demo metrics. Every number here is mock data;
// only the published posts fed into topPerformingPosts are real records.
type AnalyticsService interface {
	Dashboard(ctx context.Context, userID int64) (*transfer.DashboardAnalytics, error)
	Platform(ctx context.Context, userID int64, platform string) (map[string]any, error)
	Post(ctx context.Context, userID, postID int64) (map[string]any, error)
}

type analyticsService struct {
	posts repository.PostRepository
	now   func() time.Time
}

func NewAnalyticsService(posts repository.PostRepository) AnalyticsService {
	return &analyticsService{posts: posts, now: time.Now}
}

func (s *analyticsService) Dashboard(ctx context.Context, userID int64) (*transfer.DashboardAnalytics, error) {
	dailyData := s.dailySeries(30)

	var totals transfer.MetricTotals
	for _, day := range dailyData {
		totals.Likes += day.Likes
		totals.Shares += day.Shares
		totals.Comments += day.Comments
		totals.Clicks += day.Clicks
		totals.Impressions += day.Impressions
	}

	engagementRate := 0.0
	if totals.Impressions > 0 {
		rate := float64(totals.Likes+totals.Shares+totals.Comments) / float64(totals.Impressions) * 100
		engagementRate = math.Round(rate*100) / 100
	}

	platformData := make(map[string]transfer.PlatformMetrics)
	for platform := range AvailablePlatforms {
		platformData[platform] = transfer.PlatformMetrics{
			Followers:  rand.Intn(8000) + 300,
			Engagement: rand.Intn(800) + 30,
			Growth:     fmt.Sprintf("%.1f", rand.Float64()*10-5),
		}
	}

	topPosts, err := s.topPosts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &transfer.DashboardAnalytics{
		Overview: transfer.DashboardOverview{
			TotalPosts:       rand.Intn(50) + 20,
			TotalEngagement:  totals.Likes + totals.Shares + totals.Comments,
			TotalImpressions: totals.Impressions,
			EngagementRate:   engagementRate,
		},
		DailyData:          dailyData,
		Totals:             totals,
		PlatformData:       platformData,
		TopPerformingPosts: topPosts,
	}, nil
}

func (s *analyticsService) Platform(ctx context.Context, userID int64, platform string) (map[string]any, error) {
	if _, ok := AvailablePlatforms[platform]; !ok {
		return nil, &ValidationError{Reason: "invalid platform"}
	}

	return map[string]any{
		"platform":  platform,
		"dailyData": s.dailySeries(30),
		"audience": map[string]any{
			"followers": rand.Intn(10000) + 500,
			"growth":    fmt.Sprintf("%.1f", rand.Float64()*10-5),
		},
	}, nil
}

func (s *analyticsService) Post(ctx context.Context, userID, postID int64) (map[string]any, error) {
	post, err := s.posts.GetByIDAndUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	return map[string]any{
		"postId":      post.ID,
		"engagement":  post.Engagement,
		"impressions": rand.Intn(1000) + 100,
		"reach":       rand.Intn(800) + 80,
	}, nil
}

func (s *analyticsService) dailySeries(days int) []transfer.DailyMetrics {
	now := s.now()
	series := make([]transfer.DailyMetrics, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		series = append(series, transfer.DailyMetrics{
			Date:        date.Format("2006-01-02"),
			Likes:       rand.Intn(100) + 10,
			Shares:      rand.Intn(50) + 5,
			Comments:    rand.Intn(30) + 2,
			Clicks:      rand.Intn(200) + 20,
			Impressions: rand.Intn(1000) + 100,
		})
	}
	return series
}

func (s *analyticsService) topPosts(ctx context.Context, userID int64) ([]transfer.TopPost, error) {
	posts, err := s.posts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	top := make([]transfer.TopPost, 0, 3)
	for _, post := range posts {
		if post.Status != models.PostStatusPublished || len(post.Platforms) == 0 {
			continue
		}
		top = append(top, transfer.TopPost{
			ID:         post.ID,
			Content:    post.Content,
			Platform:   post.Platforms[0],
			Engagement: post.Engagement.Likes + post.Engagement.Shares + post.Engagement.Comments,
			Date:       post.CreatedAt.Format(time.RFC3339),
		})
		if len(top) == 3 {
			break
		}
	}
	return top, nil
}
