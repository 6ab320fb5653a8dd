package job

import (
	"context"
	"log/slog"
	"sync"

	"postdeck/internal/models"
	"postdeck/internal/repository"
	"postdeck/internal/service"
)

// PlatformSyncJob periodically refreshes follower stats for every active
// connected account, the way a real sync against the platform APIs would.
type PlatformSyncJob struct {
	pr repository.PlatformRepository
	ps service.PlatformService
}

func NewPlatformSyncJob(pr repository.PlatformRepository, ps service.PlatformService) *PlatformSyncJob {
	return &PlatformSyncJob{pr: pr, ps: ps}
}

func (j *PlatformSyncJob) SyncStats() {
	ctx := context.Background()

	accounts, err := j.pr.ListActive(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.ConnectedAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := j.ps.RefreshStats(ctx, acc); err != nil {
				slog.Info("unable to refresh stats", "platform", acc.Platform, "account_id", acc.ID)
			}
		}(acc)
	}

	wg.Wait()
}
