package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable is returned when the storage backend cannot be
// reached. Absent records are never an error; they read as StatusPending.
var ErrStoreUnavailable = errors.New("verification store unavailable")

// RedisStore keeps one verification record per subject role under the
// configured prefix. Records persist across logins and are overwritten,
// never deleted.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a RedisStore on the given key prefix.
func NewRedisStore(client redis.UniversalClient, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if prefix == "" {
		return nil, errors.New("key prefix required")
	}
	return &RedisStore{redis: client, prefix: prefix}, nil
}

func (s *RedisStore) key(subject string) string {
	return s.prefix + ":verificationStatus:" + subject
}

// Get reads the subject's status. A missing or unrecognized record reads
// as StatusPending.
func (s *RedisStore) Get(ctx context.Context, subject string) (Status, error) {
	value, err := s.redis.Get(ctx, s.key(subject)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return StatusPending, nil
		}
		return StatusPending, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return ParseStatus(value), nil
}

// Set overwrites the subject's status.
func (s *RedisStore) Set(ctx context.Context, subject string, status Status) error {
	if err := s.redis.Set(ctx, s.key(subject), status.String(), 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
