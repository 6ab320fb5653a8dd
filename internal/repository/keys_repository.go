package repository

import (
	"context"
	"sort"
	"sync"

	"postdeck/internal/models"
)

type ApiKeyRepository interface {
	Create(ctx context.Context, key *models.ApiKey) (int64, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	GetByKey(ctx context.Context, key string) (*models.ApiKey, error)
	Remove(ctx context.Context, id, userID int64) (bool, error)
}

type apiKeyRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*models.ApiKey
}

func NewApiKeyRepository() ApiKeyRepository {
	return &apiKeyRepository{items: make(map[int64]*models.ApiKey)}
}

func (r *apiKeyRepository) Create(ctx context.Context, key *models.ApiKey) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	key.ID = r.seq
	k := *key
	r.items[key.ID] = &k
	return key.ID, nil
}

func (r *apiKeyRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []*models.ApiKey
	for _, k := range r.items {
		if k.UserID == userID {
			c := *k
			keys = append(keys, &c)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].ID < keys[j].ID })
	return keys, nil
}

func (r *apiKeyRepository) GetByKey(ctx context.Context, key string) (*models.ApiKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.items {
		if k.Key == key {
			c := *k
			return &c, nil
		}
	}
	return nil, nil
}

func (r *apiKeyRepository) Remove(ctx context.Context, id, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.items[id]
	if !ok || k.UserID != userID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
