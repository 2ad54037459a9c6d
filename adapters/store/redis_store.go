package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/layer-3/tokenasset/ports"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys
const DefaultRedisPrefix = "tokenasset:session:"

// RedisStore keeps session state in Redis so every gateway instance sees a
// login or a logout. Keys expire with the session they belong to.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures RedisStore
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides DefaultRedisPrefix
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a new Redis store
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) ports.Store {
	s := &RedisStore{
		client: client,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) bearerKey(sessionID string) string {
	return s.prefix + "bearer:" + sessionID
}

func (s *RedisStore) revokedKey(sessionID string) string {
	return s.prefix + "revoked:" + sessionID
}

// SaveBearerToken stores the backend credential for the session's lifetime
func (s *RedisStore) SaveBearerToken(ctx context.Context, sessionID, bearer string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.bearerKey(sessionID), bearer, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}
	return nil
}

// BearerToken loads the session's backend credential
func (s *RedisStore) BearerToken(ctx context.Context, sessionID string) (string, bool, error) {
	bearer, err := s.client.Get(ctx, s.bearerKey(sessionID)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	default:
		return bearer, true, nil
	}
}

// RevokeSession records the revocation time for the rest of the session's
// lifetime and deletes its credential
func (s *RedisStore) RevokeSession(ctx context.Context, sessionID string, expiry time.Duration) error {
	if expiry > 0 {
		revokedAt := strconv.FormatInt(time.Now().Unix(), 10)
		if err := s.client.Set(ctx, s.revokedKey(sessionID), revokedAt, expiry).Err(); err != nil {
			return fmt.Errorf("failed to revoke session %s: %w", sessionID, err)
		}
	}
	if err := s.client.Del(ctx, s.bearerKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to drop session %s credential: %w", sessionID, err)
	}
	return nil
}

// IsSessionRevoked reports whether a live revocation exists for the session
func (s *RedisStore) IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	err := s.client.Get(ctx, s.revokedKey(sessionID)).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	default:
		return true, nil
	}
}
