package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no snapshot exists for the given instance ID.
var ErrNotFound = errors.New("session snapshot not found")

// ErrRedisUnavailable wraps transport-level Redis failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

// DefaultTTL bounds how long an abandoned flow stays resumable.
const DefaultTTL = 30 * time.Minute

const defaultPrefix = "authui"

// Store persists controller snapshots in Redis keyed by widget instance ID.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a snapshot [Store] backed by the given Redis client.
// prefix sets the Redis key namespace; empty means "authui".
func NewStore(redis redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{redis: redis, prefix: prefix}
}

func (s *Store) key(instanceID string) string {
	return s.prefix + ":snap:" + instanceID
}

// Save encodes state as JSON and stores it under the instance ID with the
// given TTL. A non-positive ttl falls back to [DefaultTTL].
func (s *Store) Save(ctx context.Context, instanceID string, state any, ttl time.Duration) error {
	if instanceID == "" {
		return errors.New("session: empty instance ID")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: encode snapshot: %w", err)
	}

	if err := s.redis.Set(ctx, s.key(instanceID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Load decodes the stored snapshot for the instance ID into the given value.
// Returns [ErrNotFound] when no snapshot exists or it has expired.
func (s *Store) Load(ctx context.Context, instanceID string, into any) error {
	data, err := s.redis.Get(ctx, s.key(instanceID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("session: decode snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot for the instance ID. Deleting a missing
// snapshot is not an error.
func (s *Store) Delete(ctx context.Context, instanceID string) error {
	if err := s.redis.Del(ctx, s.key(instanceID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// TTL reports the remaining lifetime of a snapshot. Returns [ErrNotFound]
// when no snapshot exists.
func (s *Store) TTL(ctx context.Context, instanceID string) (time.Duration, error) {
	d, err := s.redis.TTL(ctx, s.key(instanceID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if d < 0 {
		return 0, ErrNotFound
	}
	return d, nil
}
