package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "postdeck/configs"
	"postdeck/internal/repository"
	"postdeck/internal/transfer"
)

func newTestAuthService() AuthService {
	return NewAuthService(config.Config{}, repository.NewUserRepository())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService()

	userID, err := svc.Register(context.Background(), &transfer.RegisterRequest{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "hunter2",
	})
	require.NoError(t, err)
	require.NotZero(t, userID)

	loggedIn, err := svc.Login(context.Background(), &transfer.LoginRequest{
		Email:    "ana@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, loggedIn)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService()

	req := &transfer.RegisterRequest{Email: "ana@example.com", Name: "Ana", Password: "hunter2"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.True(t, IsValidation(err))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(context.Background(), &transfer.RegisterRequest{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &transfer.LoginRequest{
		Email:    "ana@example.com",
		Password: "hunter3",
	})
	assert.True(t, IsValidation(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Login(context.Background(), &transfer.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.True(t, IsValidation(err))
}
