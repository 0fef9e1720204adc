package shortener

import (
	"context"
	"time"
)

// InsertResult describes the outcome of persisting a new mapping.
type InsertResult int

const (
	// InsertCreated means the mapping was persisted.
	InsertCreated InsertResult = iota + 1
	// InsertAlreadyExists means another mapping already owns the long URL.
	InsertAlreadyExists
	// InsertCollision means another mapping already owns the short code.
	InsertCollision
)

func (r InsertResult) String() string {
	switch r {
	case InsertCreated:
		return "created"
	case InsertAlreadyExists:
		return "already_exists"
	case InsertCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// Repository is the durable store of mappings. It is the sole arbiter of
// uniqueness for both long URLs and short codes.
type Repository interface {
	// FindByLongURL returns ErrNotFound if no mapping exists for url.
	FindByLongURL(ctx context.Context, url string) (*Mapping, error)

	// FindByShortCode returns ErrNotFound if no mapping exists for code.
	FindByShortCode(ctx context.Context, code Code) (*Mapping, error)

	// Insert persists m. On InsertCreated, m.ID and m.CreatedAt are filled in.
	// Unique constraint violations are reported through the result, not the error.
	Insert(ctx context.Context, m *Mapping) (InsertResult, error)
}

// Cache is a key-value store with per-key expiry, used only as a hint.
type Cache interface {
	// Get returns ErrCacheMiss when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
