package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"statement-ledger/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.userSvc.Register(ctx, &models.RegisterRequest{Name: "Name", Email: "email@email.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password", user.PasswordHash)

	_, err = f.userSvc.Register(ctx, &models.RegisterRequest{Name: "Name 2", Email: "email@email.com", Password: "password"})
	assert.ErrorIs(t, err, ErrDuplicateUser)
	var ledgerErr *LedgerError
	require.True(t, errors.As(err, &ledgerErr))
	assert.Equal(t, "email@email.com", ledgerErr.ID)

	_, err = f.userSvc.Register(ctx, &models.RegisterRequest{Name: "No Password", Email: "x@email.com"})
	assert.ErrorIs(t, err, ErrMissingFields)

	authed, err := f.userSvc.Authenticate(ctx, &models.LoginRequest{Email: "email@email.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = f.userSvc.Authenticate(ctx, &models.LoginRequest{Email: "email@email.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.userSvc.Authenticate(ctx, &models.LoginRequest{Email: "wrong@test.com", Password: "password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	profile, err := f.userSvc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Name", profile.Name)

	_, err = f.userSvc.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthServiceTokens(t *testing.T) {
	auth := NewAuthService("secret", time.Hour, zerolog.Nop())

	token, err := auth.GenerateToken("user-1", "u@example.com")
	require.NoError(t, err)

	userID, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = NewAuthService("other-secret", time.Hour, zerolog.Nop()).ValidateToken(token)
	assert.Error(t, err)

	expired, err := NewAuthService("secret", -time.Minute, zerolog.Nop()).GenerateToken("user-1", "u@example.com")
	require.NoError(t, err)
	_, err = auth.ValidateToken(expired)
	assert.Error(t, err)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}
