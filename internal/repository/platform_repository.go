package repository

import (
	"context"
	"sort"
	"sync"

	"postdeck/internal/models"
)

type PlatformRepository interface {
	Create(ctx context.Context, account *models.ConnectedAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ConnectedAccount, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error)
	ListActive(ctx context.Context) ([]*models.ConnectedAccount, error)
	Exists(ctx context.Context, userID int64, platform, accountID string) (bool, error)
	Update(ctx context.Context, account *models.ConnectedAccount) (bool, error)
	Remove(ctx context.Context, id, userID int64) (bool, error)
}

type platformRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*models.ConnectedAccount
}

func NewPlatformRepository() PlatformRepository {
	return &platformRepository{items: make(map[int64]*models.ConnectedAccount)}
}

func cloneAccount(a *models.ConnectedAccount) *models.ConnectedAccount {
	c := *a
	c.Permissions = append([]string(nil), a.Permissions...)
	return &c
}

func (r *platformRepository) Create(ctx context.Context, account *models.ConnectedAccount) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	account.ID = r.seq
	r.items[account.ID] = cloneAccount(account)
	return account.ID, nil
}

func (r *platformRepository) GetByID(ctx context.Context, id int64) (*models.ConnectedAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneAccount(a), nil
}

func (r *platformRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var accounts []*models.ConnectedAccount
	for _, a := range r.items {
		if a.UserID == userID {
			accounts = append(accounts, cloneAccount(a))
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *platformRepository) ListActive(ctx context.Context) ([]*models.ConnectedAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var accounts []*models.ConnectedAccount
	for _, a := range r.items {
		if a.IsActive {
			accounts = append(accounts, cloneAccount(a))
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *platformRepository) Exists(ctx context.Context, userID int64, platform, accountID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if a.UserID == userID && a.Platform == platform && a.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (r *platformRepository) Update(ctx context.Context, account *models.ConnectedAccount) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[account.ID]; !ok {
		return false, nil
	}
	r.items[account.ID] = cloneAccount(account)
	return true, nil
}

func (r *platformRepository) Remove(ctx context.Context, id, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok || a.UserID != userID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
