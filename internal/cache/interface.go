package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMalformed marks a stored value that no longer decodes into the
// requested type. Backend failures are never wrapped with it.
var ErrMalformed = errors.New("malformed cache entry")

// Cache stores JSON-encoded values under string keys. Get reports a miss
// with found=false and a nil error; a value that no longer decodes is an
// error wrapping ErrMalformed.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CartKeyPrefix       = "industrial-parts-cart"
	CheckoutKeyPrefix   = "checkout"
	MachineKeyPrefix    = "machine"
	CategoriesKeyPrefix = "categories"
)
