package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenRepository(t *testing.T) (*RedisTokenRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisTokenRepository(client), mr
}

func TestRevokeTokenThenIsRevoked(t *testing.T) {
	repo, _ := newTestTokenRepository(t)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "token-abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.RevokeToken(ctx, "token-abc", time.Hour))

	revoked, err = repo.IsRevoked(ctx, "token-abc")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokedTokenExpiresWithTTL(t *testing.T) {
	repo, mr := newTestTokenRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.RevokeToken(ctx, "token-abc", time.Minute))

	mr.FastForward(2 * time.Minute)

	revoked, err := repo.IsRevoked(ctx, "token-abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeExpiredTokenIsNoOp(t *testing.T) {
	repo, mr := newTestTokenRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.RevokeToken(ctx, "token-abc", 0))
	require.NoError(t, repo.RevokeToken(ctx, "token-abc", -time.Minute))

	assert.False(t, mr.Exists("revoked:token-abc"))
}
