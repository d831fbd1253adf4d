package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the access-token lifetime used when no TTL is
// configured.
const DefaultTokenTTL = time.Hour

// TokenClaims is the access-token payload handed back on sign-in.
type TokenClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenMinter signs short-lived HS256 access tokens carrying the user's
// id, role, and display name.
type TokenMinter struct {
	key []byte
	ttl time.Duration
}

// NewTokenMinter builds a minter. An empty key is rejected; a
// non-positive TTL falls back to DefaultTokenTTL.
func NewTokenMinter(key string, ttl time.Duration) (*TokenMinter, error) {
	if key == "" {
		return nil, fmt.Errorf("access token key is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenMinter{key: []byte(key), ttl: ttl}, nil
}

// Mint issues a signed token for the user.
func (m *TokenMinter) Mint(userID, role, name string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
}

// Parse validates a token and returns its claims.
func (m *TokenMinter) Parse(token string) (*TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil {
		return nil, err
	}
	return &claims, nil
}
