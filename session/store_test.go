package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, "test"), mr
}

type snapshot struct {
	View    string `json:"view"`
	Email   string `json:"email"`
	Loading bool   `json:"loading"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := snapshot{View: "otp", Email: "a@b.co"}
	if err := store.Save(ctx, "inst-1", in, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out snapshot
	if err := store.Load(ctx, "inst-1", &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}

func TestLoadMissingReturnsNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	var out snapshot
	err := store.Load(context.Background(), "nope", &out)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveEmptyInstanceID(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Save(context.Background(), "", snapshot{}, time.Minute); err == nil {
		t.Fatal("expected error for empty instance ID")
	}
}

func TestSaveDefaultTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "inst-1", snapshot{View: "login"}, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := mr.TTL("test:snap:inst-1")
	if got != DefaultTTL {
		t.Fatalf("ttl = %v, want %v", got, DefaultTTL)
	}
}

func TestSnapshotExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "inst-1", snapshot{View: "login"}, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	var out snapshot
	if err := store.Load(ctx, "inst-1", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "inst-1", snapshot{}, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "inst-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "inst-1"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}

	var out snapshot
	if err := store.Load(ctx, "inst-1", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTTLReporting(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.TTL(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatal("expected ErrNotFound for missing snapshot")
	}

	if err := store.Save(ctx, "inst-1", snapshot{}, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}
	d, err := store.TTL(ctx, "inst-1")
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if d <= 0 || d > time.Minute {
		t.Fatalf("ttl = %v, want (0, 1m]", d)
	}
}
