package favorites

import (
	"context"
	"testing"

	"github.com/angelmondragon/mealmart-storefront/pkg/storage"
)

func TestToggleAndPersist(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemory()
	ctx := context.Background()

	store, err := NewStore(ctx, kv)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	on, err := store.Toggle(ctx, "p1")
	if err != nil || !on {
		t.Fatalf("first toggle should favorite: on=%v err=%v", on, err)
	}
	if !store.Has("p1") {
		t.Fatal("expected p1 favorited")
	}

	reloaded, err := NewStore(ctx, kv)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Has("p1") {
		t.Fatal("favorites must survive reload")
	}

	off, err := reloaded.Toggle(ctx, "p1")
	if err != nil || off {
		t.Fatalf("second toggle should unfavorite: on=%v err=%v", off, err)
	}
	if len(reloaded.IDs()) != 0 {
		t.Fatalf("expected empty set, got %v", reloaded.IDs())
	}
}

func TestSubscribeNotifies(t *testing.T) {
	t.Parallel()

	store, err := NewStore(context.Background(), storage.NewMemory())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	var seen [][]string
	unsubscribe := store.Subscribe(func(ids []string) {
		seen = append(seen, ids)
	})

	if _, err := store.Toggle(context.Background(), "p2"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(seen) != 1 || len(seen[0]) != 1 || seen[0][0] != "p2" {
		t.Fatalf("unexpected notifications %v", seen)
	}

	unsubscribe()
	if _, err := store.Toggle(context.Background(), "p3"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("unsubscribed callback must not fire")
	}
}
