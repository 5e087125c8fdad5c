package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenRevoker is a server-side revocation set for issued session tokens.
// The observed design treats sign-out as a no-op acknowledgment; with a revoker
// configured, sign-out actually invalidates the token for its remaining life.
type TokenRevoker interface {
	// Revoke marks the token id as revoked until its natural expiry.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// IsRevoked reports whether the token id has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "revoked_jwt:"

// RedisRevoker implements TokenRevoker on Redis; the key TTL matches the
// token's remaining life, so the set cleans up after itself.
type RedisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker connects to Redis and verifies the connection.
func NewRedisRevoker(addr string, db int) (*RedisRevoker, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisRevoker{client: client}, nil
}

// Revoke implements TokenRevoker.
func (r *RedisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token already expired, nothing to revoke
	}
	return r.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err()
}

// IsRevoked implements TokenRevoker.
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close terminates the Redis connection.
func (r *RedisRevoker) Close() error {
	return r.client.Close()
}
