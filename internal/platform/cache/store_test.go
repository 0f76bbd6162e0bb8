package cache

import (
	"context"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatal("Get returned a value for a missing key")
	}

	store.Set(ctx, "rules", 42)
	got, ok := store.Get(ctx, "rules")
	if !ok || got != 42 {
		t.Fatalf("Get = %v, %v; want 42, true", got, ok)
	}

	store.Delete(ctx, "rules")
	if _, ok := store.Get(ctx, "rules"); ok {
		t.Fatal("Get returned a value after Delete")
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)

	store.Set(ctx, "rules", "v")
	if _, ok := store.Get(ctx, "rules"); !ok {
		t.Fatal("value expired immediately")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Get(ctx, "rules"); ok {
		t.Fatal("value survived past its TTL")
	}
}

func TestStore_EmptyKeyIsIgnored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)

	store.Set(ctx, "", "v")
	if _, ok := store.Get(ctx, ""); ok {
		t.Fatal("empty key should never hit")
	}
}
