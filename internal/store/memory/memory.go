// Package memory implements store.KV in process memory.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Store holds values in a map. The zero value is not usable; call New.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string]string)}
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

// GetString returns the value stored under key, or "" when the key is absent.
func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// SetString stores value under key.
func (s *Store) SetString(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
