package service

import (
	"context"
	"testing"

	"dockside/internal/database"
	"dockside/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	sessions := &mockSessions{}
	var saved *models.Session
	sessions.On("SaveSession", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*models.Session)
	}).Return(nil)

	tm := NewTokenManager("test-secret", 24, sessions)
	user := &models.User{ID: "u1", Role: models.RoleGuest}

	token, err := tm.Issue(context.Background(), user)
	require.NoError(t, err)
	require.NotNil(t, saved)

	sessions.On("GetSession", mock.Anything, saved.ID).Return(saved, nil)

	claims, err := tm.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleGuest, claims.Role)
	assert.Equal(t, saved.ID, claims.ID)
}

func TestTokenRevokedSession(t *testing.T) {
	sessions := &mockSessions{}
	sessions.On("SaveSession", mock.Anything, mock.Anything).Return(nil)
	sessions.On("GetSession", mock.Anything, mock.Anything).Return(nil, database.ErrNotFound)

	tm := NewTokenManager("test-secret", 24, sessions)
	token, err := tm.Issue(context.Background(), &models.User{ID: "u1", Role: models.RoleGuest})
	require.NoError(t, err)

	_, err = tm.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenWrongSecret(t *testing.T) {
	sessions := &mockSessions{}
	sessions.On("SaveSession", mock.Anything, mock.Anything).Return(nil)

	issuer := NewTokenManager("one-secret", 24, sessions)
	token, err := issuer.Issue(context.Background(), &models.User{ID: "u1", Role: models.RoleGuest})
	require.NoError(t, err)

	verifier := NewTokenManager("another-secret", 24, sessions)
	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = issuer.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRevoke(t *testing.T) {
	sessions := &mockSessions{}
	var saved *models.Session
	sessions.On("SaveSession", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*models.Session)
	}).Return(nil)

	tm := NewTokenManager("test-secret", 24, sessions)
	token, err := tm.Issue(context.Background(), &models.User{ID: "u1", Role: models.RoleGuest})
	require.NoError(t, err)

	sessions.On("GetSession", mock.Anything, saved.ID).Return(saved, nil)
	sessions.On("DeleteSession", mock.Anything, saved.ID).Return(nil)

	require.NoError(t, tm.Revoke(context.Background(), token))
	sessions.AssertCalled(t, "DeleteSession", mock.Anything, saved.ID)
}
