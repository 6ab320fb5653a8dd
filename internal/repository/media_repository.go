package repository

import (
	"context"
	"sort"
	"sync"

	"postdeck/internal/models"
)

type MediaAssetRepository interface {
	Create(ctx context.Context, asset *models.MediaAsset) (int64, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.MediaAsset, error)
}

type mediaAssetRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*models.MediaAsset
}

func NewMediaAssetRepository() MediaAssetRepository {
	return &mediaAssetRepository{items: make(map[int64]*models.MediaAsset)}
}

func (r *mediaAssetRepository) Create(ctx context.Context, asset *models.MediaAsset) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	asset.ID = r.seq
	a := *asset
	r.items[asset.ID] = &a
	return asset.ID, nil
}

func (r *mediaAssetRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.MediaAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var assets []*models.MediaAsset
	for _, a := range r.items {
		if a.UserID == userID {
			c := *a
			assets = append(assets, &c)
		}
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}
