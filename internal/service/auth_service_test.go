package service

import (
	"context"
	"testing"
	"time"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidateTeacherToken(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(testConfig(), newMemSessions())

	token, perms, err := auth.IssueTeacherToken(ctx, &model.Teacher{UserID: "a1", Admin: true})
	require.NoError(t, err)
	assert.Contains(t, perms, string(model.PermissionRevenueRead))

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.UserID)
	assert.True(t, claims.Admin)
	assert.True(t, claims.HasPermission(string(model.PermissionRevenueRead)))
	assert.False(t, claims.HasPermission("nope"))
	assert.NoError(t, auth.ValidateSession(ctx, claims.UserID, claims.ID))
}

func TestNewLoginInvalidatesOldSession(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(testConfig(), newMemSessions())
	teacher := &model.Teacher{UserID: "t1"}

	first, _, err := auth.IssueTeacherToken(ctx, teacher)
	require.NoError(t, err)
	_, _, err = auth.IssueTeacherToken(ctx, teacher)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(first)
	require.NoError(t, err)
	assert.ErrorIs(t, auth.ValidateSession(ctx, "t1", claims.ID), ErrSessionInvalidated)
}

func TestRevokeSession(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(testConfig(), newMemSessions())

	token, _, err := auth.IssueTeacherToken(ctx, &model.Teacher{UserID: "t1"})
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	require.NoError(t, auth.RevokeSession(ctx, "t1"))
	assert.ErrorIs(t, auth.ValidateSession(ctx, "t1", claims.ID), ErrNoSession)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	auth := NewAuthService(testConfig(), newMemSessions())
	token, _, err := auth.IssueTeacherToken(context.Background(), &model.Teacher{UserID: "t1"})
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "different"
	_, err = NewAuthService(other, newMemSessions()).ValidateToken(token)
	assert.Error(t, err)

	_, err = auth.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	auth := NewAuthService(testConfig(), newMemSessions())
	auth.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := auth.IssueTeacherToken(context.Background(), &model.Teacher{UserID: "t1"})
	require.NoError(t, err)

	auth.now = time.Now
	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}
