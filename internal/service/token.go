package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dockside/internal/database"
	"dockside/internal/domain"
	"dockside/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried inside access tokens. The jti doubles as the session id,
// so revoking a session invalidates the token before its natural expiry.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret   []byte
	ttl      time.Duration
	sessions domain.SessionRepository
}

func NewTokenManager(secret string, ttlHours int, sessions domain.SessionRepository) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		ttl:      time.Duration(ttlHours) * time.Hour,
		sessions: sessions,
	}
}

// Issue signs an HS256 token for the user and records the backing session.
func (m *TokenManager) Issue(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if m.sessions != nil {
		if err := m.sessions.SaveSession(ctx, session); err != nil {
			return "", fmt.Errorf("save session: %w", err)
		}
	}

	return signed, nil
}

// Verify parses the token, checks the signature and confirms the backing
// session still exists.
func (m *TokenManager) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}

	if m.sessions != nil {
		if _, err := m.sessions.GetSession(ctx, claims.ID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
	}

	return claims, nil
}

// Revoke drops the backing session; a token with that jti stops verifying.
func (m *TokenManager) Revoke(ctx context.Context, token string) error {
	claims, err := m.Verify(ctx, token)
	if err != nil {
		return err
	}
	if m.sessions == nil {
		return nil
	}
	return m.sessions.DeleteSession(ctx, claims.ID)
}
