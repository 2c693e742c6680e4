package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, expireAt, err := GenerateToken("secret", 42, "editor", false, 24)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expireAt, time.Minute)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "editor", claims.Role)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, "wordsrecord", claims.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateToken("secret", 1, "admin", true, 1)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, _, err := GenerateToken("secret", 1, "admin", true, -1)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestParseTokenWrongIssuer(t *testing.T) {
	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.token")
	assert.Error(t, err)
}
