package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenExpiry = 15 * time.Minute

var (
	ErrMissingSubject = errors.New("token has no subject")
	ErrInvalidToken   = errors.New("invalid token")
)

// Claims are the access token claims. The subject is the acting user
// recorded in audit fields.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 access token for subject, valid for ttl from now.
func GenerateToken(secret []byte, subject, email string, now time.Time, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", ErrMissingSubject
	}
	if ttl <= 0 {
		ttl = AccessTokenExpiry
	}

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
