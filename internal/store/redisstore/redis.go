// Package redisstore implements store.KV on a Redis server.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// DefaultKeyPrefix namespaces every key this store writes.
const DefaultKeyPrefix = "solicit_review:"

// Store persists values as plain Redis strings without expiry.
type Store struct {
	client *redis.Client
	prefix string
}

// New creates a Store on client. An empty prefix selects DefaultKeyPrefix.
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// GetInt returns the integer stored under key, or 0 when the key is absent.
func (s *Store) GetInt(ctx context.Context, key string) (int, error) {
	raw, err := s.GetString(ctx, key)
	if err != nil || raw == "" {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("value for %q is not an integer: %w", key, err)
	}
	return n, nil
}

// SetInt stores value under key as its decimal text.
func (s *Store) SetInt(ctx context.Context, key string, value int) error {
	return s.SetString(ctx, key, strconv.Itoa(value))
}

// GetString returns the prefixed key's value, or "" when redis reports no key.
func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, nil
}

// SetString stores value under the prefixed key without expiry.
func (s *Store) SetString(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// Ping reports whether the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
