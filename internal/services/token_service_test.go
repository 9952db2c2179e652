package services

import (
	"testing"
	"time"

	"schoolhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := testTokens()

	token, err := tokens.IssueAccessToken(42, models.RoleTeacher)
	require.NoError(t, err)

	claims, err := tokens.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := testTokens().IssueAccessToken(1, models.RoleStudent)
	require.NoError(t, err)

	other := NewTokenServiceWithSecrets("another-access", "another-refresh")
	_, err = other.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	tokens := testTokens()

	refresh, err := tokens.IssueRefreshToken(7)
	require.NoError(t, err)

	// Signed with the refresh secret, so the access verifier must reject it.
	_, err = tokens.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	userID, err := tokens.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := testTokens()

	_, err := tokens.VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = tokens.VerifyRefreshToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewEphemeralToken(t *testing.T) {
	tokens := testTokens()

	a, expiryA, err := tokens.NewEphemeralToken(time.Hour)
	require.NoError(t, err)
	b, _, err := tokens.NewEphemeralToken(time.Hour)
	require.NoError(t, err)

	assert.Len(t, a, 64) // 32 random bytes, hex encoded
	assert.NotEqual(t, a, b)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiryA, 5*time.Second)
}
