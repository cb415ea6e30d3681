package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepository tracks revoked JWTs so logout takes effect before the
// token's natural expiry.
type TokenRepository interface {
	RevokeToken(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisTokenRepository implements TokenRepository backed by Redis with TTL
type RedisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository creates a new RedisTokenRepository
func NewRedisTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client}
}

// RevokeToken denylists the token until it would have expired anyway
func (r *RedisTokenRepository) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return r.client.Set(ctx, revokedKey(token), "1", ttl).Err()
}

// IsRevoked reports whether the token has been denylisted
func (r *RedisTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := r.client.Get(ctx, revokedKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func revokedKey(token string) string {
	return "revoked:" + token
}
