// Package storetest holds the behavior every store.KV implementation shares.
package storetest

import (
	"context"
	"testing"

	"github.com/maloquacious/solicitreview/internal/store"
)

// RunKV exercises kv against the store.KV contract. kv must start empty.
func RunKV(t *testing.T, kv store.KV) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing keys read as zero values", func(t *testing.T) {
		n, err := kv.GetInt(ctx, "missing_int")
		if err != nil {
			t.Fatalf("GetInt: %v", err)
		}
		if n != 0 {
			t.Errorf("got %d, want 0", n)
		}
		s, err := kv.GetString(ctx, "missing_string")
		if err != nil {
			t.Fatalf("GetString: %v", err)
		}
		if s != "" {
			t.Errorf("got %q, want empty", s)
		}
	})

	t.Run("read your writes", func(t *testing.T) {
		for _, v := range []int{1, 2, 0, 41} {
			if err := kv.SetInt(ctx, "counter", v); err != nil {
				t.Fatalf("SetInt(%d): %v", v, err)
			}
			got, err := kv.GetInt(ctx, "counter")
			if err != nil {
				t.Fatalf("GetInt: %v", err)
			}
			if got != v {
				t.Errorf("got %d, want %d", got, v)
			}
		}
		for _, v := range []string{"1.0", "1.0+build.7", ""} {
			if err := kv.SetString(ctx, "version", v); err != nil {
				t.Fatalf("SetString(%q): %v", v, err)
			}
			got, err := kv.GetString(ctx, "version")
			if err != nil {
				t.Fatalf("GetString: %v", err)
			}
			if got != v {
				t.Errorf("got %q, want %q", got, v)
			}
		}
	})

	t.Run("non-integer value under integer key", func(t *testing.T) {
		if err := kv.SetString(ctx, "garbled", "three"); err != nil {
			t.Fatalf("SetString: %v", err)
		}
		if _, err := kv.GetInt(ctx, "garbled"); err == nil {
			t.Error("expected error reading a non-integer value")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		if err := kv.SetInt(ctx, "a", 7); err != nil {
			t.Fatalf("SetInt: %v", err)
		}
		if err := kv.SetInt(ctx, "b", 9); err != nil {
			t.Fatalf("SetInt: %v", err)
		}
		a, _ := kv.GetInt(ctx, "a")
		b, _ := kv.GetInt(ctx, "b")
		if a != 7 || b != 9 {
			t.Errorf("got a=%d b=%d, want a=7 b=9", a, b)
		}
	})
}
