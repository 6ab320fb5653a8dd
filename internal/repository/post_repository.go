package repository

import (
	"context"
	"sort"
	"sync"

	"postdeck/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*models.Post, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
}

type postRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*models.Post
}

func NewPostRepository() PostRepository {
	return &postRepository{items: make(map[int64]*models.Post)}
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Platforms = append([]string(nil), p.Platforms...)
	c.Images = append([]string(nil), p.Images...)
	c.Hashtags = append([]string(nil), p.Hashtags...)
	if p.ScheduledTime != nil {
		at := *p.ScheduledTime
		c.ScheduledTime = &at
	}
	if p.PublishedAt != nil {
		at := *p.PublishedAt
		c.PublishedAt = &at
	}
	return &c
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	post.ID = r.seq
	r.items[post.ID] = clonePost(post)
	return post.ID, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return clonePost(p), nil
}

func (r *postRepository) GetByIDAndUserID(ctx context.Context, id, userID int64) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return clonePost(p), nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var posts []*models.Post
	for _, p := range r.items {
		if p.UserID == userID {
			posts = append(posts, clonePost(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[post.ID]; !ok {
		return false, nil
	}
	r.items[post.ID] = clonePost(post)
	return true, nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
