// Package rediskv provides a Redis-backed storage.Store for deployments that
// already carry a Redis instance for shared dashboard state.
package rediskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/campaignwala/sessiongate/storage"
)

// ErrRedisUnavailable wraps transport-level Redis failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store is a Redis-backed storage.Store. Keys are namespaced under the
// configured prefix.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

var _ storage.Store = (*Store)(nil)

// NewStore creates a Store on the given Redis client. prefix sets the key
// namespace; empty defaults to "cw".
func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "cw"
	}
	return &Store{
		redis:  client,
		prefix: prefix,
	}
}

func (s *Store) key(key string) string {
	return s.prefix + ":" + key
}

// Get implements storage.Store.
//
//	Performance: 1 Redis GET.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.redis.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return value, true, nil
}

// Set implements storage.Store. Values persist without TTL; the session layer
// owns their lifetime and clears them on logout.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Delete implements storage.Store.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = s.key(k)
	}

	if err := s.redis.Del(ctx, namespaced...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
