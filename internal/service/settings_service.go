package service

import (
	"context"

	"postdeck/internal/models"
	"postdeck/internal/repository"
	"postdeck/internal/transfer"
)

type SettingsService interface {
	Get(ctx context.Context, userID int64) (*models.Settings, error)
	Update(ctx context.Context, userID int64, su *transfer.SettingsUpdate) (*models.Settings, error)
}

type settingsService struct {
	r repository.SettingsRepository
}

func NewSettingsService(r repository.SettingsRepository) SettingsService {
	return &settingsService{r: r}
}

func (s *settingsService) Get(ctx context.Context, userID int64) (*models.Settings, error) {
	settings, err := s.r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &models.Settings{UserID: userID, Timezone: "UTC", DefaultPlatforms: []string{}}, nil
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, userID int64, su *transfer.SettingsUpdate) (*models.Settings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if su.Timezone != nil {
		settings.Timezone = *su.Timezone
	}
	if su.DefaultPlatforms != nil {
		for _, platform := range su.DefaultPlatforms {
			if _, ok := AvailablePlatforms[platform]; !ok {
				return nil, &ValidationError{Reason: "invalid platform"}
			}
		}
		settings.DefaultPlatforms = su.DefaultPlatforms
	}

	if err := s.r.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
