package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const blacklistPrefix = "blacklist:"

// Revoker keeps signed-out tokens until they expire.
type Revoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type RedisRevoker struct {
	client *redis.Client
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client}
}

// Revoke blacklists token until expiresAt. A zero expiresAt keeps it forever.
func (r *RedisRevoker) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	var ttl time.Duration
	if !expiresAt.IsZero() {
		ttl = time.Until(expiresAt)
		if ttl <= 0 {
			return nil
		}
	}
	return r.client.Set(ctx, blacklistPrefix+token, 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := r.client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// NopRevoker is used when no Redis is configured: nothing is ever revoked.
type NopRevoker struct{}

func (NopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

func (NopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
