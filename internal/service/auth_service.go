package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	config "postdeck/configs"
	"postdeck/internal/models"
	"postdeck/internal/repository"
	"postdeck/internal/transfer"
	"postdeck/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, req *transfer.RegisterRequest) (int64, error)
	Login(ctx context.Context, req *transfer.LoginRequest) (int64, error)
	LoginCallback(ctx context.Context, code string) (int64, error)
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{cfg: cfg, u: u}
}

func (s *authService) Register(ctx context.Context, req *transfer.RegisterRequest) (int64, error) {
	_, exists, err := s.u.GetByEmail(ctx, req.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, &ValidationError{Reason: "email already registered"}
	}

	salt, err := utils.GenerateRandomKey(16)
	if err != nil {
		return 0, err
	}

	return s.u.Create(ctx, &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: utils.HashPassword(req.Password, salt),
		PasswordSalt: salt,
		CreatedAt:    time.Now().UTC(),
	})
}

func (s *authService) Login(ctx context.Context, req *transfer.LoginRequest) (int64, error) {
	user, exists, err := s.u.GetByEmail(ctx, req.Email)
	if err != nil {
		return 0, err
	}
	if !exists || !utils.VerifyPassword(req.Password, user.PasswordSalt, user.PasswordHash) {
		return 0, &ValidationError{Reason: "invalid email or password"}
	}
	return user.ID, nil
}

func (s *authService) LoginCallback(ctx context.Context, code string) (int64, error) {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return 0, err
	}

	oauth2Config := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return 0, err
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	userInfo, err := fetchGoogleUserInfo(oauth2Config.Client(ctx, token))
	if err != nil {
		return 0, err
	}

	user, exists, err := s.u.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return user.ID, nil
	}

	return s.u.Create(ctx, &models.User{
		GoogleID:       userInfo.ID,
		Email:          userInfo.Email,
		Name:           userInfo.Name,
		ProfilePicture: userInfo.Picture,
		CreatedAt:      time.Now().UTC(),
	})
}

func fetchGoogleUserInfo(client *http.Client) (*transfer.GoogleUserInfo, error) {
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var info transfer.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &info, nil
}
