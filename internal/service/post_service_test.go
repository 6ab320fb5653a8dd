package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdeck/internal/models"
	"postdeck/internal/repository"
	"postdeck/internal/transfer"
)

func newTestPostService() (*postService, repository.PostRepository) {
	repo := repository.NewPostRepository()
	svc := &postService{repo: repo, now: func() time.Time { return testNow }}
	return svc, repo
}

func TestCreatePostDefaultsToDraft(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.Create(context.Background(), 1, &transfer.PostCreation{
		Content:   "draft copy",
		Platforms: []string{"twitter"},
	})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Equal(t, testNow, post.CreatedAt)
}

func TestCreatePostRequiresContentAndPlatforms(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.Create(context.Background(), 1, &transfer.PostCreation{Platforms: []string{"twitter"}})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(context.Background(), 1, &transfer.PostCreation{Content: "no platforms"})
	assert.True(t, IsValidation(err))
}

func TestUpdatePost(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.Create(context.Background(), 1, &transfer.PostCreation{
		Content:   "original",
		Platforms: []string{"twitter"},
	})
	require.NoError(t, err)

	content := "revised"
	updated, err := svc.Update(context.Background(), 1, post.ID, &transfer.PostUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Content)
}

func TestPostOwnerScoping(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.Create(context.Background(), 1, &transfer.PostCreation{
		Content:   "mine",
		Platforms: []string{"twitter"},
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Remove(context.Background(), 2, post.ID), ErrNotFound)
}

func TestRemovePost(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.Create(context.Background(), 1, &transfer.PostCreation{
		Content:   "ephemeral",
		Platforms: []string{"twitter"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), 1, post.ID))
	_, err = svc.Get(context.Background(), 1, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishNow(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.Create(context.Background(), 1, &transfer.PostCreation{
		Content:   "going out now",
		Platforms: []string{"twitter", "linkedin"},
	})
	require.NoError(t, err)

	published, err := svc.PublishNow(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, testNow, *published.PublishedAt)
	assert.Positive(t, published.Engagement.Likes)
	assert.Positive(t, published.Engagement.Clicks)
}
