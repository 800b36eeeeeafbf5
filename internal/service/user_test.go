package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story_web/internal/utils"
)

func TestUserRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.users.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)

	_, err = env.users.Register(ctx, "alice", "other@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	token, err := env.users.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = env.users.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.users.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := env.users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestUserVerifyAndRefreshToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.users.Register(ctx, "alice", "", "secret123")
	require.NoError(t, err)
	token, err := env.users.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	got, err := env.users.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	fresh, err := env.users.RefreshToken(ctx, token)
	require.NoError(t, err)
	got, err = env.users.VerifyToken(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = env.users.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = env.users.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 簽章正確但用戶已不存在
	orphan, err := utils.NewTokenManager("test-secret", time.Hour).GenerateToken(999, "ghost")
	require.NoError(t, err)
	_, err = env.users.VerifyToken(ctx, orphan)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
