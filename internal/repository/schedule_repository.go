package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"postdeck/internal/models"
)

// ScheduleRepository stores scheduled posts. The backing store is process
// memory; records are never physically deleted, cancellation is a status
// change. Status transitions out of "scheduled" are compare-and-set so a
// publish in flight and a late cancel cannot both win.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.SchedulePost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SchedulePost, error)
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*models.SchedulePost, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.SchedulePost, error)
	UpdateScheduled(ctx context.Context, schedule *models.SchedulePost) (bool, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id int64, reason string) (bool, error)
	MarkCancelled(ctx context.Context, id int64) (bool, error)
}

type scheduleRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*models.SchedulePost
}

func NewScheduleRepository() ScheduleRepository {
	return &scheduleRepository{items: make(map[int64]*models.SchedulePost)}
}

func cloneSchedule(s *models.SchedulePost) *models.SchedulePost {
	c := *s
	c.Post.Platforms = append([]string(nil), s.Post.Platforms...)
	c.Post.Images = append([]string(nil), s.Post.Images...)
	c.Post.Hashtags = append([]string(nil), s.Post.Hashtags...)
	c.Recurring = append([]byte(nil), s.Recurring...)
	if s.PublishedAt != nil {
		at := *s.PublishedAt
		c.PublishedAt = &at
	}
	if s.Error != nil {
		msg := *s.Error
		c.Error = &msg
	}
	return &c
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *models.SchedulePost) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	schedule.ID = r.seq
	r.items[schedule.ID] = cloneSchedule(schedule)
	return schedule.ID, nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id int64) (*models.SchedulePost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneSchedule(s), nil
}

func (r *scheduleRepository) GetByIDAndUserID(ctx context.Context, id, userID int64) (*models.SchedulePost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	return cloneSchedule(s), nil
}

func (r *scheduleRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.SchedulePost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var schedules []*models.SchedulePost
	for _, s := range r.items {
		if s.UserID == userID {
			schedules = append(schedules, cloneSchedule(s))
		}
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].ID < schedules[j].ID })
	return schedules, nil
}

// UpdateScheduled replaces the stored record only while it is still in
// scheduled status. Returns false if the record is gone or has moved on.
func (r *scheduleRepository) UpdateScheduled(ctx context.Context, schedule *models.SchedulePost) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[schedule.ID]
	if !ok || current.Status != models.ScheduleStatusScheduled {
		return false, nil
	}
	r.items[schedule.ID] = cloneSchedule(schedule)
	return true, nil
}

func (r *scheduleRepository) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) (bool, error) {
	return r.transition(id, func(s *models.SchedulePost) {
		s.Status = models.ScheduleStatusPublished
		s.PublishedAt = &publishedAt
	})
}

func (r *scheduleRepository) MarkFailed(ctx context.Context, id int64, reason string) (bool, error) {
	return r.transition(id, func(s *models.SchedulePost) {
		s.Status = models.ScheduleStatusFailed
		s.Error = &reason
	})
}

func (r *scheduleRepository) MarkCancelled(ctx context.Context, id int64) (bool, error) {
	return r.transition(id, func(s *models.SchedulePost) {
		s.Status = models.ScheduleStatusCancelled
	})
}

func (r *scheduleRepository) transition(id int64, apply func(*models.SchedulePost)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok || s.Status != models.ScheduleStatusScheduled {
		return false, nil
	}
	apply(s)
	return true, nil
}
