package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	config "postdeck/configs"
	"postdeck/internal/models"
	"postdeck/internal/repository"
	"postdeck/internal/transfer"
	"postdeck/pkg/utils"
)

type PlatformService interface {
	Available() map[string]models.PlatformInfo
	Connected(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error)
	Connect(ctx context.Context, userID int64, pc *transfer.PlatformConnection) (*models.ConnectedAccount, error)
	Disconnect(ctx context.Context, userID, accountID int64) error
	RefreshStats(ctx context.Context, account *models.ConnectedAccount) error
}

type platformService struct {
	cfg  config.Config
	repo repository.PlatformRepository
}

func NewPlatformService(cfg config.Config, repo repository.PlatformRepository) PlatformService {
	return &platformService{cfg: cfg, repo: repo}
}

func (s *platformService) Available() map[string]models.PlatformInfo {
	return AvailablePlatforms
}

func (s *platformService) Connected(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *platformService) Connect(ctx context.Context, userID int64, pc *transfer.PlatformConnection) (*models.ConnectedAccount, error) {
	info, ok := AvailablePlatforms[pc.Platform]
	if !ok {
		return nil, &ValidationError{Reason: "invalid platform"}
	}

	accountID := pc.AccountID
	if accountID == "" {
		accountID = fmt.Sprintf("%s_%d", pc.Platform, time.Now().UnixMilli())
	}

	exists, err := s.repo.Exists(ctx, userID, pc.Platform, accountID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ValidationError{Reason: "platform account already connected"}
	}

	account := &models.ConnectedAccount{
		UserID:      userID,
		Platform:    pc.Platform,
		AccountName: pc.AccountName,
		AccountID:   accountID,
		ConnectedAt: time.Now().UTC(),
		IsActive:    true,
		LastSync:    time.Now().UTC(),
		Permissions: append([]string(nil), info.Features...),
		Stats:       randomStats(),
	}

	if pc.AccessToken != "" {
		encrypted, err := utils.Encrypt([]byte(pc.AccessToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return nil, fmt.Errorf("encrypt access token: %w", err)
		}
		account.AccessToken = encrypted
	}

	if _, err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *platformService) Disconnect(ctx context.Context, userID, accountID int64) error {
	removed, err := s.repo.Remove(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

// RefreshStats simulates a sync against the platform API.
func (s *platformService) RefreshStats(ctx context.Context, account *models.ConnectedAccount) error {
	account.Stats = randomStats()
	account.LastSync = time.Now().UTC()

	updated, err := s.repo.Update(ctx, account)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func randomStats() models.AccountStats {
	return models.AccountStats{
		Followers: rand.Intn(10000) + 100,
		Following: rand.Intn(1000) + 50,
		Posts:     rand.Intn(500) + 10,
	}
}

// AvailablePlatforms is the catalog of platforms the dashboard can target.
var AvailablePlatforms = map[string]models.PlatformInfo{
	"facebook": {
		Name:           "Facebook",
		Icon:           "facebook",
		Color:          "#1877F2",
		Features:       []string{"posts", "images", "videos", "scheduling", "analytics"},
		MaxCharacters:  63206,
		SupportedMedia: []string{"image", "video", "gif"},
	},
	"instagram": {
		Name:           "Instagram",
		Icon:           "instagram",
		Color:          "#E4405F",
		Features:       []string{"posts", "stories", "images", "videos", "scheduling"},
		MaxCharacters:  2200,
		SupportedMedia: []string{"image", "video"},
	},
	"twitter": {
		Name:           "Twitter",
		Icon:           "twitter",
		Color:          "#1DA1F2",
		Features:       []string{"posts", "threads", "images", "videos", "scheduling"},
		MaxCharacters:  280,
		SupportedMedia: []string{"image", "video", "gif"},
	},
	"linkedin": {
		Name:           "LinkedIn",
		Icon:           "linkedin",
		Color:          "#0A66C2",
		Features:       []string{"posts", "articles", "images", "videos", "scheduling"},
		MaxCharacters:  3000,
		SupportedMedia: []string{"image", "video", "document"},
	},
	"youtube": {
		Name:           "YouTube",
		Icon:           "youtube",
		Color:          "#FF0000",
		Features:       []string{"videos", "scheduling", "analytics"},
		MaxCharacters:  5000,
		SupportedMedia: []string{"video"},
	},
	"tiktok": {
		Name:           "TikTok",
		Icon:           "music",
		Color:          "#000000",
		Features:       []string{"videos", "scheduling"},
		MaxCharacters:  150,
		SupportedMedia: []string{"video"},
	},
}
