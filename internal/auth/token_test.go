package auth

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")

	token, err := NewAccessToken(42, "ana@example.com", time.Now())
	require.NoError(t, err)

	userID, err := VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestRefreshTokenNotAcceptedAsAccess(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")

	refresh, err := NewRefreshToken(42, time.Now())
	require.NoError(t, err)

	_, err = VerifyAccessToken(refresh)
	assert.Error(t, err)

	userID, err := VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestAccessTokenNotAcceptedAsRefresh(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")

	access, err := NewAccessToken(42, "ana@example.com", time.Now())
	require.NoError(t, err)

	_, err = VerifyRefreshToken(access)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")

	token, err := NewAccessToken(42, "ana@example.com", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")

	token, err := NewAccessToken(42, "ana@example.com", time.Now())
	require.NoError(t, err)

	_, err = VerifyAccessToken(token + "x")
	assert.Error(t, err)
}
