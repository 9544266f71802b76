package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares a session between machines, e.g. depot kiosks.
type RedisStore struct {
	client *redis.Client
	ns     string
}

// NewRedisStore wraps client. Keys never expire; logout deletes them.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{client: client, ns: namespace}
}

// Get returns the stored value or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, namespaced(s.ns, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Set stores value without expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, namespaced(s.ns, key), value, 0).Err()
}

// Delete removes keys.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, namespaced(s.ns, key))
	}
	return s.client.Del(ctx, full...).Err()
}
