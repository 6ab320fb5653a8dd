package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"postdeck/internal/models"
)

// Simulated stands in for the real platform APIs. It fans out over the target
// platforms with bounded concurrency, the way the real dispatcher would, but
// only validates the platform name and logs.
type Simulated struct {
	platforms   map[string]models.PlatformInfo
	concurrency int
}

func NewSimulated(platforms map[string]models.PlatformInfo, concurrency int) *Simulated {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Simulated{platforms: platforms, concurrency: concurrency}
}

func (p *Simulated) Publish(ctx context.Context, post *models.SchedulePost) error {
	for _, platform := range post.Post.Platforms {
		if _, ok := p.platforms[platform]; !ok {
			return fmt.Errorf("unknown platform %q", platform)
		}
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency)
	errCh := make(chan error, len(post.Post.Platforms))

	for _, platform := range post.Post.Platforms {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(platform string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			default:
			}

			slog.Info("publishing post", "schedule_id", post.ID, "platform", platform)
		}(platform)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}
