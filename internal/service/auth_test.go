package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/curioapp/curio-server/internal/errors"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	resp, err := svc.Auth.Register(ctx, RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Positive(t, resp.ExpiresIn)
	assert.NotEmpty(t, resp.SessionID)

	login, err := svc.Auth.Login(ctx, LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotEqual(t, resp.SessionID, login.SessionID, "each login gets its own session")
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Auth.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Auth.Register(ctx, RegisterRequest{Email: "Alice@Example.com", Password: "different1"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Auth.Register(ctx, RegisterRequest{Email: "not-an-email", Password: "hunter22"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = svc.Auth.Register(ctx, RegisterRequest{Email: "bob@example.com", Password: "short"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestAuthService_LoginWrongCredentials(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Auth.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable
	_, errPass := svc.Auth.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})
	_, errMail := svc.Auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "hunter22"})

	require.Error(t, errPass)
	require.Error(t, errMail)
	assert.True(t, domainerrors.Is(errPass, domainerrors.ErrInvalidCredentials))
	assert.True(t, domainerrors.Is(errMail, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, errPass.Error(), errMail.Error())
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	reg, err := svc.Auth.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	refreshed, err := svc.Auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, reg.SessionID, refreshed.SessionID, "refresh keeps the session")
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken, "refresh token must rotate")

	// The old token is spent
	_, err = svc.Auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrTokenExpired))

	// The new one still works
	_, err = svc.Auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	reg, err := svc.Auth.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, svc.Auth.Logout(ctx, reg.SessionID))

	_, err = svc.Auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	require.Error(t, err)
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	reg, err := svc.Auth.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	user, claims, err := svc.Auth.VerifyAccessToken(ctx, reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, user.ID)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	_, _, err = svc.Auth.VerifyAccessToken(ctx, "v4.local.garbage")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}
