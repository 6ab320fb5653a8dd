package service

import (
	"context"
	"math/rand"
	"time"

	"postdeck/internal/models"
	"postdeck/internal/repository"
	"postdeck/internal/transfer"
)

type PostService interface {
	Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, error)
	List(ctx context.Context, userID int64) ([]*models.Post, error)
	Get(ctx context.Context, userID, postID int64) (*models.Post, error)
	Update(ctx context.Context, userID, postID int64, pu *transfer.PostUpdate) (*models.Post, error)
	Remove(ctx context.Context, userID, postID int64) error
	PublishNow(ctx context.Context, userID, postID int64) (*models.Post, error)
}

type postService struct {
	repo repository.PostRepository
	now  func() time.Time
}

func NewPostService(repo repository.PostRepository) PostService {
	return &postService{repo: repo, now: time.Now}
}

func (s *postService) Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, error) {
	if pc.Content == "" || len(pc.Platforms) == 0 {
		return nil, &ValidationError{Reason: "content and at least one platform are required"}
	}

	status := pc.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	now := s.now().UTC()
	post := &models.Post{
		UserID:    userID,
		Content:   pc.Content,
		Platforms: pc.Platforms,
		Images:    emptyIfNil(pc.Images),
		Hashtags:  emptyIfNil(pc.Hashtags),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pc.ScheduledTime != nil {
		t, err := parseScheduledTime(*pc.ScheduledTime)
		if err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
		post.ScheduledTime = &t
	}

	if _, err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, userID int64) ([]*models.Post, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *postService) Get(ctx context.Context, userID, postID int64) (*models.Post, error) {
	post, err := s.repo.GetByIDAndUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, userID, postID int64, pu *transfer.PostUpdate) (*models.Post, error) {
	post, err := s.Get(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if pu.Content != nil {
		post.Content = *pu.Content
	}
	if pu.Platforms != nil {
		post.Platforms = pu.Platforms
	}
	if pu.Images != nil {
		post.Images = pu.Images
	}
	if pu.Hashtags != nil {
		post.Hashtags = pu.Hashtags
	}
	if pu.Status != nil {
		post.Status = *pu.Status
	}
	if pu.ScheduledTime != nil {
		t, err := parseScheduledTime(*pu.ScheduledTime)
		if err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
		post.ScheduledTime = &t
	}
	post.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	if _, err := s.Get(ctx, userID, postID); err != nil {
		return err
	}
	removed, err := s.repo.Remove(ctx, postID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

// PublishNow flips a draft straight to published and fabricates engagement
// numbers, standing in for the platform calls.
func (s *postService) PublishNow(ctx context.Context, userID, postID int64) (*models.Post, error) {
	post, err := s.Get(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post.Status = models.PostStatusPublished
	post.PublishedAt = &now
	post.UpdatedAt = now
	post.Engagement = models.Engagement{
		Likes:    rand.Intn(50) + 1,
		Shares:   rand.Intn(20) + 1,
		Comments: rand.Intn(10) + 1,
		Clicks:   rand.Intn(100) + 5,
	}

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}
	return post, nil
}
