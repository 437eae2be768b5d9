// Package cart holds the shopper's current selections across sessions. It
// is a display cache, not a pricing authority: line totals are trusted from
// callers and re-validated server-side at order placement.
package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
	"github.com/angelmondragon/mealmart-storefront/pkg/storage"
)

// record is the persisted cart payload.
type record struct {
	Items      []LineItem `json:"items"`
	ProviderID *string    `json:"provider_id"`
}

// Store enforces the cart invariants (one line per product, derived totals)
// and mirrors every mutation to durable storage. Subscribers receive a
// snapshot after each applied mutation.
type Store struct {
	mu         sync.Mutex
	items      []LineItem
	providerID *string
	kv         storage.KV
	subs       map[int]func(Snapshot)
	nextSubID  int
}

// NewStore restores any persisted cart and returns the store.
func NewStore(ctx context.Context, kv storage.KV) (*Store, error) {
	if kv == nil {
		return nil, errors.New("storage is required")
	}
	s := &Store{kv: kv, subs: map[int]func(Snapshot){}}
	var rec record
	if err := storage.LoadJSON(ctx, kv, storage.KeyCart, &rec); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return s, nil
	}
	s.items = rec.Items
	s.providerID = rec.ProviderID
	return s, nil
}

// Add merges the item into the cart. An existing line for the same product
// gains the incoming quantity and total (the caller prices the increment);
// otherwise the line is appended, preserving insertion order.
func (s *Store) Add(ctx context.Context, item LineItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			s.items[i].Total = s.items[i].Total.Add(item.Total)
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item.clone())
	}
	return s.persistAndNotifyLocked(ctx)
}

// Remove drops the line for the given product. Absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persistAndNotifyLocked(ctx)
		}
	}
	s.mu.Unlock()
	return nil
}

// UpdateQuantity sets the line's quantity and recomputes its total from the
// effective unit price and extras. A quantity below 1 removes the line.
// Absent ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return s.Remove(ctx, productID)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			s.items[i].Total = s.items[i].ComputeTotal(quantity)
			return s.persistAndNotifyLocked(ctx)
		}
	}
	s.mu.Unlock()
	return nil
}

// Clear empties the cart and unsets the provider. Called after a successful
// order placement.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	s.providerID = nil
	return s.persistAndNotifyLocked(ctx)
}

// SetProviderID records which provider the cart belongs to. Informational
// only; the backend enforces single-provider carts.
func (s *Store) SetProviderID(ctx context.Context, providerID *string) error {
	s.mu.Lock()
	if providerID == nil {
		s.providerID = nil
	} else {
		id := *providerID
		s.providerID = &id
	}
	return s.persistAndNotifyLocked(ctx)
}

// TotalAmount sums all line totals.
func (s *Store) TotalAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.items)
}

// ItemCount sums all line quantities, used for the cart badge.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countOf(s.items)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// ProviderID returns the associated provider, nil when unset.
func (s *Store) ProviderID() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.providerID == nil {
		return nil
	}
	id := *s.providerID
	return &id
}

// Snapshot returns the full immutable view.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a callback invoked with a snapshot after every
// applied mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// persistAndNotifyLocked writes the record, captures the snapshot and
// subscriber list, then releases the lock before invoking callbacks. The
// in-memory mutation stands even when persistence fails; the error is
// reported so the UI can surface it.
func (s *Store) persistAndNotifyLocked(ctx context.Context) error {
	rec := record{Items: s.items, ProviderID: s.providerID}
	err := storage.SaveJSON(ctx, s.kv, storage.KeyCart, rec)
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting cart")
	}
	return nil
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Items: cloneItems(s.items),
		Total: totalOf(s.items),
		Count: countOf(s.items),
	}
	if s.providerID != nil {
		id := *s.providerID
		snap.ProviderID = &id
	}
	return snap
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	copied := make([]LineItem, len(items))
	for i, item := range items {
		copied[i] = item.clone()
	}
	return copied
}

func totalOf(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total)
	}
	return total
}

func countOf(items []LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
