package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"postdeck/internal/models"
	"postdeck/internal/repository"
)

type ApiKeyService interface {
	Create(ctx context.Context, userID int64) (*models.ApiKey, error)
	List(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, apiKey string) (int64, error)
	Remove(ctx context.Context, userID, keyID int64) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{k: k}
}

func (s *apiKeyService) Create(ctx context.Context, userID int64) (*models.ApiKey, error) {
	keys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(keys) > 4 {
		err = errors.New("only 5 API keys can be created")
		slog.Info(err.Error())
		return nil, &ValidationError{Reason: err.Error()}
	}

	raw, err := gonanoid.New(32)
	if err != nil {
		return nil, err
	}

	key := &models.ApiKey{
		UserID:    userID,
		Key:       raw,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.k.Create(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *apiKeyService) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	return s.k.GetByUserID(ctx, userID)
}

func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (int64, error) {
	key, err := s.k.GetByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}
	if key == nil {
		return 0, errors.New("invalid API key")
	}
	return key.UserID, nil
}

func (s *apiKeyService) Remove(ctx context.Context, userID, keyID int64) error {
	removed, err := s.k.Remove(ctx, keyID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
