package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/mealmart-storefront/pkg/config"
)

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, KeyCart); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	payload := []byte(`{"items":[]}`)
	if err := store.Set(ctx, KeyCart, payload); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx, KeyCart)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("round trip mismatch: %s", got)
	}

	if err := store.Delete(ctx, KeyCart); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, KeyCart); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, err := store.Get(ctx, KeyCart); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFileRejectsPathKeys(t *testing.T) {
	t.Parallel()

	store, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/b", `a\b`} {
		if err := store.Set(ctx, key, []byte("x")); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
	}
}

func TestSaveLoadJSON(t *testing.T) {
	t.Parallel()

	kv := NewMemory()
	ctx := context.Background()

	type record struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}

	saved := record{Token: "tok", UserID: "u-1"}
	if err := SaveJSON(ctx, kv, KeySession, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	var loaded record
	if err := LoadJSON(ctx, kv, KeySession, &loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != saved {
		t.Fatalf("expected %+v, got %+v", saved, loaded)
	}

	if err := LoadJSON(ctx, kv, "missing", &loaded); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewSelectsFileBackend(t *testing.T) {
	t.Parallel()

	kv, err := New(context.Background(),
		config.StorageConfig{Backend: config.StorageFile, Dir: t.TempDir()},
		config.RedisConfig{})
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	if _, ok := kv.(*File); !ok {
		t.Fatalf("expected *File, got %T", kv)
	}

	if _, err := New(context.Background(),
		config.StorageConfig{Backend: "clay-tablet"},
		config.RedisConfig{}); err == nil {
		t.Fatal("expected unsupported backend to fail")
	}
}
