package auth

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioapp/curio-server/internal/domain"
)

func testTokenService(t *testing.T) *TokenService {
	t.Helper()
	key := make([]byte, 32)
	svc, err := NewTokenService(hex.EncodeToString(key), 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22secret")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword(hash, "hunter22secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testTokenService(t)
	user := &domain.User{ID: "usr-abc123", Email: "ada@example.com"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-abc123", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "usr-abc123", claims.Subject)
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	svc := testTokenService(t)
	_, err := svc.VerifyAccessToken("v4.local.nonsense")
	assert.Error(t, err)
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	key := make([]byte, 32)
	svc, err := NewTokenService(hex.EncodeToString(key), -1*time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "usr-x", Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	svc := testTokenService(t)
	token, err := svc.GenerateRefreshToken()
	require.NoError(t, err)

	h1 := HashRefreshToken(token)
	h2 := HashRefreshToken(token)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, token, h1)
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key1, 32)

	// Second call loads the same key from disk.
	key2, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	info, err := os.Stat(filepath.Join(dir, "auth.key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrGenerateKeyRejectsCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.key"), []byte("too short"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}
