package repository

import (
	"context"
	"sync"

	"postdeck/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
}

type userRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*models.User
}

func NewUserRepository() UserRepository {
	return &userRepository{items: make(map[int64]*models.User)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	user.ID = r.seq
	u := *user
	r.items[user.ID] = &u
	return user.ID, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			c := *u
			return &c, true, nil
		}
	}
	return nil, false, nil
}
