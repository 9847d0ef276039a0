// Package auth implements JWT issuance and verification for the access/refresh
// token pair. Access and refresh tokens are both HS256 JWTs carrying the user
// id, signed with distinct secrets so one can never stand in for the other.
package auth

import (
	"errors"
	"time"

	"communityhub/internal/common"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claim set plus the owning user id.
// The payload field name follows the API contract ("id").
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// RefreshVerification is the outcome of verifying a refresh token.
// Expired is only meaningful when Valid is true: it distinguishes a
// structurally sound but stale token from garbage, so the transport layer
// can answer with a specific "expired" message.
type RefreshVerification struct {
	Valid   bool
	Expired bool
	UserID  string
}

// GenerateToken produces a signed token for userID that expires after
// validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies an access token and returns the user id it
// carries. Expired tokens yield common.ErrTokenExpired so the caller can tell
// the client to attempt a silent refresh; every other failure maps to
// common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// VerifyRefreshToken checks a refresh token's signature and expiry.
// A bad signature or malformed token reports Valid=false. A token whose
// signature verifies but whose expiry has passed reports Valid=true,
// Expired=true. Otherwise the owning user id is returned.
func VerifyRefreshToken(tokenString string, secretKey []byte) RefreshVerification {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return RefreshVerification{Valid: true, Expired: true, UserID: claims.UserID}
		}
		return RefreshVerification{}
	}

	return RefreshVerification{Valid: true, UserID: claims.UserID}
}
