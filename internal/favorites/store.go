// Package favorites keeps the shopper's favorited product ids across
// sessions, with the same explicit subscribe/notify container shape as the
// cart store.
package favorites

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/angelmondragon/mealmart-storefront/pkg/storage"
)

type record struct {
	ProductIDs []string `json:"product_ids"`
}

type Store struct {
	mu        sync.Mutex
	ids       map[string]struct{}
	kv        storage.KV
	subs      map[int]func([]string)
	nextSubID int
}

// NewStore restores any persisted favorites set.
func NewStore(ctx context.Context, kv storage.KV) (*Store, error) {
	if kv == nil {
		return nil, errors.New("storage is required")
	}
	s := &Store{kv: kv, ids: map[string]struct{}{}, subs: map[int]func([]string){}}
	var rec record
	if err := storage.LoadJSON(ctx, kv, storage.KeyFavorites, &rec); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return s, nil
	}
	for _, id := range rec.ProductIDs {
		s.ids[id] = struct{}{}
	}
	return s, nil
}

// Toggle flips the favorite state for the product and reports the new state.
func (s *Store) Toggle(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	_, present := s.ids[productID]
	if present {
		delete(s.ids, productID)
	} else {
		s.ids[productID] = struct{}{}
	}
	err := s.persistAndNotifyLocked(ctx)
	return !present, err
}

// Has reports whether the product is favorited.
func (s *Store) Has(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[productID]
	return ok
}

// IDs returns the favorited product ids, sorted for stable display.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// Subscribe registers a callback invoked with the id list after each
// change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func([]string)) func() {
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

func (s *Store) persistAndNotifyLocked(ctx context.Context) error {
	ids := s.sortedLocked()
	err := storage.SaveJSON(ctx, s.kv, storage.KeyFavorites, record{ProductIDs: ids})
	subs := make([]func([]string), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ids)
	}
	return err
}

func (s *Store) sortedLocked() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
