package authui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/singlebase/authui/session"
)

func newSnapshotStore(t *testing.T) *session.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return session.NewStore(rdb, "authui")
}

func newPersistentController(t *testing.T, store *session.Store, instanceID string) *Controller {
	t.Helper()

	fc := newFakeClient(false)
	fc.user = nil

	ctrl, err := New().
		WithClient(fc).
		WithInstanceID(instanceID).
		WithSessionStore(store).
		WithConfigPatch(ConfigPatch{SigninCallback: func(User) error { return nil }}).
		WithConfigPatch(fastPollPatch()).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(ctrl.Close)

	if err := ctrl.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return ctrl
}

func TestSaveSnapshotRoundTrip(t *testing.T) {
	store := newSnapshotStore(t)
	ctrl := newPersistentController(t, store, "inst-roundtrip")

	ctrl.SetView(ViewSignup)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().DisplayName = "Ada"
	ctrl.Form().Password = "hunter2hunter2"

	if err := ctrl.SaveSnapshot(context.Background(), time.Minute); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	restored := newPersistentController(t, store, "inst-restored")
	if err := restored.RestoreSnapshot(context.Background(), "inst-roundtrip"); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}

	if restored.CurrentView() != ViewSignup {
		t.Fatalf("view = %q", restored.CurrentView())
	}
	if restored.Form().Email != "a@b.co" || restored.Form().DisplayName != "Ada" {
		t.Fatalf("form = %+v", restored.Form())
	}
}

func TestSaveSnapshotStripsSensitiveFields(t *testing.T) {
	store := newSnapshotStore(t)
	ctrl := newPersistentController(t, store, "inst-sensitive")

	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "hunter2hunter2"
	ctrl.Form().OTP = "123456"

	if err := ctrl.SaveSnapshot(context.Background(), time.Minute); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	var snap Snapshot
	if err := store.Load(context.Background(), "inst-sensitive", &snap); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Form.Password != "" || snap.Form.OTP != "" {
		t.Fatalf("sensitive fields persisted: %+v", snap.Form)
	}
	if snap.Form.Email != "a@b.co" {
		t.Fatalf("email = %q", snap.Form.Email)
	}

	// The live form keeps its buffers; only the persisted copy is stripped.
	if ctrl.Form().Password != "hunter2hunter2" {
		t.Fatal("expected the in-memory form to be untouched")
	}
}

func TestRestoreSnapshotKeepsInitializationLocal(t *testing.T) {
	store := newSnapshotStore(t)
	ctrl := newPersistentController(t, store, "inst-source")

	ctrl.Form().Email = "a@b.co"
	if err := ctrl.SaveSnapshot(context.Background(), time.Minute); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	// A fresh, never-initialized instance restores the flow but still has
	// to initialize before actions run.
	fc := newFakeClient(false)
	cold, err := New().
		WithClient(fc).
		WithSessionStore(store).
		WithConfigPatch(ConfigPatch{SigninCallback: func(User) error { return nil }}).
		WithConfigPatch(fastPollPatch()).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(cold.Close)

	if err := cold.RestoreSnapshot(context.Background(), "inst-source"); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}
	if cold.Form().Email != "a@b.co" {
		t.Fatalf("email = %q", cold.Form().Email)
	}
	if cold.Initialized() != InitPending {
		t.Fatal("expected restore to leave initialization state alone")
	}
	if _, err := cold.SubmitSigninWithPassword(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestRestoreSnapshotMissing(t *testing.T) {
	store := newSnapshotStore(t)
	ctrl := newPersistentController(t, store, "inst-missing")

	err := ctrl.RestoreSnapshot(context.Background(), "never-saved")
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected session.ErrNotFound, got %v", err)
	}
}

func TestSnapshotWithoutStore(t *testing.T) {
	fc := newFakeClient(false)
	ctrl, err := New().
		WithClient(fc).
		WithConfigPatch(ConfigPatch{SigninCallback: func(User) error { return nil }}).
		WithConfigPatch(fastPollPatch()).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(ctrl.Close)

	if err := ctrl.SaveSnapshot(context.Background(), time.Minute); !errors.Is(err, ErrNoSessionStore) {
		t.Fatalf("expected ErrNoSessionStore, got %v", err)
	}
	if err := ctrl.RestoreSnapshot(context.Background(), "x"); !errors.Is(err, ErrNoSessionStore) {
		t.Fatalf("expected ErrNoSessionStore, got %v", err)
	}
}
