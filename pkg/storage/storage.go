// Package storage provides the durable key-value records the storefront
// keeps across sessions (cart, session, favorites). Implementations are
// interchangeable; callers hold the KV interface.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/mealmart-storefront/pkg/config"
)

// ErrNotFound is returned when a key has no stored record.
var ErrNotFound = errors.New("storage: key not found")

// Well-known record keys.
const (
	KeyCart      = "cart"
	KeySession   = "session"
	KeyFavorites = "favorites"
)

// KV is the minimal durable key-value surface used by the client stores.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// New selects the configured backend.
func New(ctx context.Context, cfg config.StorageConfig, redisCfg config.RedisConfig) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case config.StorageFile:
		return NewFile(cfg.Dir)
	case config.StorageRedis:
		return NewRedis(ctx, redisCfg)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// LoadJSON reads the record at key and unmarshals it into dest.
func LoadJSON(ctx context.Context, kv KV, key string, dest any) error {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decoding record %q: %w", key, err)
	}
	return nil
}

// SaveJSON marshals value and writes it at key.
func SaveJSON(ctx context.Context, kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding record %q: %w", key, err)
	}
	return kv.Set(ctx, key, raw)
}
