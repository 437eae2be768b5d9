package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
	"github.com/angelmondragon/mealmart-storefront/pkg/storage"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestStore(t *testing.T) (*Store, storage.KV) {
	t.Helper()
	kv := storage.NewMemory()
	store, err := NewStore(context.Background(), kv)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, kv
}

func simpleItem(productID string, qty int, unitPrice, total string) LineItem {
	return LineItem{
		ProductID: productID,
		Name:      "item " + productID,
		UnitPrice: dec(unitPrice),
		Quantity:  qty,
		Total:     dec(total),
	}
}

func TestAddMergesSameProduct(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, simpleItem("p1", 1, "20.00", "20.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, simpleItem("p1", 2, "20.00", "40.00")); err != nil {
		t.Fatalf("add: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if !items[0].Total.Equal(dec("60.00")) {
		t.Fatalf("expected total 60.00, got %s", items[0].Total)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"p3", "p1", "p2"} {
		if err := store.Add(ctx, simpleItem(id, 1, "5.00", "5.00")); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	items := store.Items()
	got := []string{items[0].ProductID, items[1].ProductID, items[2].ProductID}
	want := []string{"p3", "p1", "p2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, simpleItem("", 1, "5.00", "5.00")); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for empty product id, got %v", err)
	}
	if err := store.Add(ctx, simpleItem("p1", 0, "5.00", "0.00")); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestDerivedTotals(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, simpleItem("p1", 3, "20.00", "60.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, simpleItem("p2", 1, "15.00", "15.00")); err != nil {
		t.Fatalf("add: %v", err)
	}

	if !store.TotalAmount().Equal(dec("75.00")) {
		t.Fatalf("expected total 75.00, got %s", store.TotalAmount())
	}
	if store.ItemCount() != 4 {
		t.Fatalf("expected item count 4, got %d", store.ItemCount())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, simpleItem("p1", 1, "20.00", "20.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Remove(ctx, "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx, "p1"); err != nil {
		t.Fatalf("second remove must be a no-op: %v", err)
	}
	if store.ItemCount() != 0 {
		t.Fatalf("expected empty cart, got %d items", store.ItemCount())
	}
}

func TestUpdateQuantityRecomputesTotal(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, simpleItem("p1", 1, "20.00", "20.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.UpdateQuantity(ctx, "p1", 5); err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	items := store.Items()
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	if !items[0].Total.Equal(dec("100.00")) {
		t.Fatalf("expected total 100.00, got %s", items[0].Total)
	}
}

func TestUpdateQuantityWithSizeAndExtras(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	item := LineItem{
		ProductID: "p1",
		Name:      "combo plate",
		UnitPrice: dec("20.00"),
		Quantity:  1,
		Size:      &SizeOption{ID: "L", Name: "large", Price: dec("25.00")},
		Extras: []ExtraOption{
			{ID: "e1", Name: "cheese", Price: dec("2.50"), Quantity: 2},
		},
		Total: dec("30.00"),
	}
	if err := store.Add(ctx, item); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.UpdateQuantity(ctx, "p1", 3); err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	// 25.00 * 3 + 2.50 * 2
	if got := store.Items()[0].Total; !got.Equal(dec("80.00")) {
		t.Fatalf("expected total 80.00, got %s", got)
	}
}

func TestUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, simpleItem("p1", 2, "20.00", "40.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.UpdateQuantity(ctx, "p1", 0); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if store.ItemCount() != 0 {
		t.Fatalf("expected line removed, got %d items", store.ItemCount())
	}
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	if err := store.UpdateQuantity(context.Background(), "ghost", 4); err != nil {
		t.Fatalf("unknown product must be a no-op: %v", err)
	}
}

func TestClearResetsEverything(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	provider := "prov-1"
	if err := store.SetProviderID(ctx, &provider); err != nil {
		t.Fatalf("set provider: %v", err)
	}
	if err := store.Add(ctx, simpleItem("p1", 2, "20.00", "40.00")); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.ItemCount() != 0 {
		t.Fatalf("expected count 0, got %d", store.ItemCount())
	}
	if !store.TotalAmount().Equal(decimal.Zero) {
		t.Fatalf("expected total 0, got %s", store.TotalAmount())
	}
	if store.ProviderID() != nil {
		t.Fatalf("expected provider unset")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemory()
	ctx := context.Background()

	store, err := NewStore(ctx, kv)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	provider := "prov-7"
	if err := store.SetProviderID(ctx, &provider); err != nil {
		t.Fatalf("set provider: %v", err)
	}
	if err := store.Add(ctx, simpleItem("p1", 3, "20.00", "60.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, simpleItem("p2", 1, "15.00", "15.00")); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded, err := NewStore(ctx, kv)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}

	original := store.Items()
	restored := reloaded.Items()
	if len(restored) != len(original) {
		t.Fatalf("expected %d items, got %d", len(original), len(restored))
	}
	for i := range original {
		if restored[i].ProductID != original[i].ProductID ||
			restored[i].Quantity != original[i].Quantity ||
			!restored[i].Total.Equal(original[i].Total) {
			t.Fatalf("item %d mismatch: %+v vs %+v", i, restored[i], original[i])
		}
	}
	if reloaded.ProviderID() == nil || *reloaded.ProviderID() != provider {
		t.Fatalf("provider id must round-trip")
	}
	if !reloaded.TotalAmount().Equal(dec("75.00")) {
		t.Fatalf("expected restored total 75.00, got %s", reloaded.TotalAmount())
	}
}

func TestSubscribeNotifiesOnMutation(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	var snapshots []Snapshot
	unsubscribe := store.Subscribe(func(snap Snapshot) {
		snapshots = append(snapshots, snap)
	})

	if err := store.Add(ctx, simpleItem("p1", 1, "20.00", "20.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("expected one notification, got %d", len(snapshots))
	}
	if snapshots[0].Count != 1 || !snapshots[0].Total.Equal(dec("20.00")) {
		t.Fatalf("unexpected snapshot %+v", snapshots[0])
	}

	unsubscribe()
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("unsubscribed callback must not fire, got %d notifications", len(snapshots))
	}
}
