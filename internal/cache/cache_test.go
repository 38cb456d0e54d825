package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2023, 10, 24, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache[string, int]()
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)
	c.Set("forever", 2, 0)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected a to expire")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Fatalf("zero ttl entries never expire")
	}

	c.Clear()
	if _, ok := c.Get("forever"); ok {
		t.Fatalf("expected empty cache after Clear")
	}
}

func TestNilTTLCache(t *testing.T) {
	var c *TTLCache[string, int]
	c.Set("a", 1, time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("nil cache must miss")
	}
}

func TestResolver_CachesValue(t *testing.T) {
	calls := 0
	value := "v1"
	r := NewResolver(func(ctx context.Context, key string) (string, error) {
		calls++
		return value, nil
	}, 5*time.Minute)

	got, err := r.Resolve(context.Background(), "catalog")
	if err != nil || got != "v1" {
		t.Fatalf("Resolve = %q, %v", got, err)
	}
	value = "v2"
	if got, _ := r.Resolve(context.Background(), "catalog"); got != "v1" {
		t.Errorf("expected cached v1, got %q", got)
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}

	r.Invalidate("catalog")
	if got, _ := r.Resolve(context.Background(), "catalog"); got != "v2" {
		t.Errorf("expected v2 after Invalidate, got %q", got)
	}

	value = "v3"
	r.InvalidateAll()
	if got, _ := r.Resolve(context.Background(), "catalog"); got != "v3" {
		t.Errorf("expected v3 after InvalidateAll, got %q", got)
	}
}

func TestResolver_ZeroTTLDisablesCaching(t *testing.T) {
	calls := 0
	r := NewResolver(func(ctx context.Context, key int) (int, error) {
		calls++
		return calls, nil
	}, 0)
	r.Resolve(context.Background(), 1)
	r.Resolve(context.Background(), 1)
	if calls != 2 {
		t.Fatalf("loader called %d times, want 2", calls)
	}
}

func TestResolver_ErrorsAreNotCached(t *testing.T) {
	fail := true
	r := NewResolver(func(ctx context.Context, key string) (int, error) {
		if fail {
			return 0, errors.New("db down")
		}
		return 42, nil
	}, time.Minute)

	if _, err := r.Resolve(context.Background(), "k"); err == nil {
		t.Fatalf("expected error")
	}
	fail = false
	if v, err := r.Resolve(context.Background(), "k"); err != nil || v != 42 {
		t.Fatalf("Resolve = %d, %v", v, err)
	}
}
