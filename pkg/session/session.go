// Package session owns the persisted auth record (token + user id) shared
// between the auth flows that write it and the dispatch layer that reads it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/angelmondragon/mealmart-storefront/pkg/storage"
)

// Record is the durable session payload.
type Record struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Store caches the session record in memory and mirrors every change to
// durable storage. It satisfies dispatch.SessionSource.
type Store struct {
	mu  sync.RWMutex
	rec Record
	kv  storage.KV
}

// NewStore loads any persisted session record and returns the store. A
// missing record is not an error; the visitor is anonymous.
func NewStore(ctx context.Context, kv storage.KV) (*Store, error) {
	if kv == nil {
		return nil, errors.New("storage is required")
	}
	s := &Store{kv: kv}
	var rec Record
	if err := storage.LoadJSON(ctx, kv, storage.KeySession, &rec); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	} else {
		s.rec = rec
	}
	return s, nil
}

// Set stores the authenticated session and persists it.
func (s *Store) Set(ctx context.Context, token, userID string) error {
	s.mu.Lock()
	s.rec = Record{Token: token, UserID: userID}
	rec := s.rec
	s.mu.Unlock()
	return storage.SaveJSON(ctx, s.kv, storage.KeySession, rec)
}

// Clear drops the session in memory and in storage.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.rec = Record{}
	s.mu.Unlock()
	return s.kv.Delete(ctx, storage.KeySession)
}

// Token returns the stored access token, empty when anonymous.
func (s *Store) Token(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Token
}

// UserID returns the stored user identifier, empty when anonymous.
func (s *Store) UserID(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.UserID
}

// Authenticated reports whether a token is present, regardless of expiry.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Token != ""
}

// Expiry parses the token without verifying its signature (the backend is
// the authority) and returns the exp claim.
func Expiry(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return exp.Time, nil
}

// Expired reports whether the token carries an exp claim in the past.
// Unparseable tokens count as expired.
func Expired(token string, now time.Time) bool {
	exp, err := Expiry(token)
	if err != nil {
		return true
	}
	return exp.Before(now)
}
