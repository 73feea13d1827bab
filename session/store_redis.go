package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kokomatto/portalauth/signal"
)

// RedisStore is the durable Store implementation. State lives in two keys
// under the configured prefix, isAuthenticated and userRole, matching the
// storage layout the portals were built against. Change notices go out on
// two channels: the local hub, invoked synchronously before Set and Clear
// return, and a Redis pub/sub bridge for other processes.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
	hub    *signal.Hub
	bridge *signal.Bridge
}

// NewRedisStore creates a RedisStore on the given key prefix and pub/sub
// channel. The prefix namespaces the two session keys; channel carries
// cross-process change notices.
func NewRedisStore(client redis.UniversalClient, prefix, channel string) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if prefix == "" {
		return nil, errors.New("key prefix required")
	}

	hub := signal.NewHub()
	bridge, err := signal.NewBridge(client, channel, hub)
	if err != nil {
		return nil, err
	}

	return &RedisStore{
		redis:  client,
		prefix: prefix,
		hub:    hub,
		bridge: bridge,
	}, nil
}

func (s *RedisStore) authKey() string {
	return s.prefix + ":isAuthenticated"
}

func (s *RedisStore) roleKey() string {
	return s.prefix + ":userRole"
}

// Get reads the current session. Missing or unrecognized values decode as
// guest; only backend failure is an error.
func (s *RedisStore) Get(ctx context.Context) (Session, error) {
	pipe := s.redis.Pipeline()
	authCmd := pipe.Get(ctx, s.authKey())
	roleCmd := pipe.Get(ctx, s.roleKey())
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return Guest(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	auth, err := authCmd.Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Guest(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	role, err := roleCmd.Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Guest(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return Session{
		Authenticated: auth == "true",
		Role:          ParseRole(role),
	}.Normalize(), nil
}

// Set replaces the session and notifies subscribers. Remote delivery is
// best effort; local listeners have all run by the time Set returns.
func (s *RedisStore) Set(ctx context.Context, sess Session) error {
	sess = sess.Normalize()

	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if sess.Authenticated {
			pipe.Set(ctx, s.authKey(), "true", 0)
		} else {
			pipe.Del(ctx, s.authKey())
		}
		if sess.Role != RoleGuest {
			pipe.Set(ctx, s.roleKey(), sess.Role.String(), 0)
		} else {
			pipe.Del(ctx, s.roleKey())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.announce(ctx, sess)
	return nil
}

// Clear resets to guest and notifies subscribers.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.authKey(), s.roleKey()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.announce(ctx, Guest())
	return nil
}

// Subscribe registers fn for change notices, local and remote. The
// returned unsubscribe function is idempotent.
func (s *RedisStore) Subscribe(fn func(Session)) func() {
	if fn == nil {
		return func() {}
	}
	return s.hub.Subscribe(func(payload []byte) {
		sess, err := Decode(payload)
		if err != nil {
			sess = Guest()
		}
		fn(sess)
	})
}

// Broadcast re-announces the current session without changing it.
func (s *RedisStore) Broadcast(ctx context.Context) error {
	sess, err := s.Get(ctx)
	if err != nil {
		return err
	}
	s.announce(ctx, sess)
	return nil
}

// Close stops the pub/sub receive loop. Pending local subscriptions stop
// receiving remote notices; the Redis client itself is the caller's to
// close.
func (s *RedisStore) Close() error {
	s.bridge.Close()
	return nil
}

func (s *RedisStore) announce(ctx context.Context, sess Session) {
	payload := Encode(sess)

	// Remote first so the publish precedes local handlers that may read
	// back. Publish failure only degrades cross-process freshness, so it
	// is not surfaced to the writer.
	_ = s.bridge.Publish(ctx, payload)
	s.hub.Emit(payload)
}
