package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfp/backend/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestHashPasswordLongInput(t *testing.T) {
	long := strings.Repeat("a", 100)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	// Bytes beyond 72 do not participate in the hash.
	assert.True(t, CheckPassword(hash, long))
	assert.True(t, CheckPassword(hash, strings.Repeat("a", 72)))
	assert.False(t, CheckPassword(hash, strings.Repeat("a", 71)))
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{Username: "ayse", Role: models.RoleRepresentative}
	raw, err := IssueToken("topsecret", user, TokenTTL)
	require.NoError(t, err)

	claims, err := ParseToken("topsecret", raw)
	require.NoError(t, err)
	assert.Equal(t, "ayse", claims.Subject)
	assert.Equal(t, models.RoleRepresentative, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	user := &models.User{Username: "ayse", Role: models.RoleViewer}
	raw, err := IssueToken("topsecret", user, TokenTTL)
	require.NoError(t, err)

	_, err = ParseToken("othersecret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	user := &models.User{Username: "ayse", Role: models.RoleViewer}
	raw, err := IssueToken("topsecret", user, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("topsecret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("topsecret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
