package repository

import (
	"context"
	"sync"

	"postdeck/internal/models"
)

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Settings, error)
	Upsert(ctx context.Context, settings *models.Settings) error
}

type settingsRepository struct {
	mu    sync.RWMutex
	items map[int64]*models.Settings
}

func NewSettingsRepository() SettingsRepository {
	return &settingsRepository{items: make(map[int64]*models.Settings)}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID int64) (*models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[userID]
	if !ok {
		return nil, nil
	}
	c := *s
	c.DefaultPlatforms = append([]string(nil), s.DefaultPlatforms...)
	return &c, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *settings
	c.DefaultPlatforms = append([]string(nil), settings.DefaultPlatforms...)
	r.items[settings.UserID] = &c
	return nil
}
