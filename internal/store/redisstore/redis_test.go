package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/maloquacious/solicitreview/internal/store/storetest"
)

func newTestStore(t *testing.T, prefix string) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := New(client, prefix)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestKV(t *testing.T) {
	s, _ := newTestStore(t, "")
	storetest.RunKV(t, s)
}

func TestKeyPrefix(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, "")

	if err := s.SetInt(ctx, "engagement_counter", 3); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	got, err := mr.Get(DefaultKeyPrefix + "engagement_counter")
	if err != nil {
		t.Fatalf("miniredis Get: %v", err)
	}
	if got != "3" {
		t.Errorf("got %q, want %q", got, "3")
	}
	if ttl := mr.TTL(DefaultKeyPrefix + "engagement_counter"); ttl != 0 {
		t.Errorf("expected no expiry, got %v", ttl)
	}
}

func TestCustomPrefixIsolates(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	a := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "app_a:")
	b := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "app_b:")
	defer a.Close()
	defer b.Close()

	if err := a.SetString(ctx, "last_version_prompted", "1.0"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	got, err := b.GetString(ctx, "last_version_prompted")
	if err != nil {
		t.Fatalf("GetString: %v", err)
	}
	if got != "" {
		t.Errorf("prefix leak: got %q", got)
	}
}

func TestUnreachable(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, "")
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	mr.Close()
	if _, err := s.GetString(ctx, "k"); err == nil {
		t.Error("expected error from closed server")
	}
}
