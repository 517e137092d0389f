package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/palmledger/palmledger/internal/shared"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs, verifies, and revokes bearer tokens. Revoked token
// IDs live in Redis until the token would have expired anyway.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(secret string, ttl time.Duration, client *redis.Client) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, redis: client}
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(user *User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a bearer token, rejecting revoked tokens.
func (m *TokenManager) Verify(ctx context.Context, raw string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if m.redis != nil && claims.ID != "" {
		revoked, err := m.redis.Exists(ctx, revocationKey(claims.ID)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}
		if revoked > 0 {
			return nil, shared.ErrTokenRevoked
		}
	}
	return &claims, nil
}

// Revoke denylists a token until its natural expiry.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	if m.redis == nil || claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return m.redis.Set(ctx, revocationKey(claims.ID), "1", ttl).Err()
}

func revocationKey(jti string) string {
	return "auth:revoked:" + jti
}
