// Package jwt issues and validates the HS256 access tokens used by the API.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "wordsrecord"

// Claims carried in every access token.
type Claims struct {
	UserID  uint   `json:"user_id"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// GenerateToken signs an access token for the user, returning the token and
// its expiry.
func GenerateToken(secret string, userID uint, role string, isAdmin bool, expireHours int) (string, time.Time, error) {
	now := time.Now()
	expireAt := now.Add(time.Duration(expireHours) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:  userID,
		Role:    role,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expireAt),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expireAt, nil
}

// ParseToken verifies signature, signing method, issuer and expiry.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("access token is not valid")
	}
	return claims, nil
}
