// Package metadata is the client's durable key/value store. It backs the
// credential holder, which keeps the session token under a single key.
package metadata

import (
	"context"
)

// Repository persists string values by key.
//
// Get reports ok=false (and a nil error) when the key is absent, so callers
// can treat "never stored" and "explicitly empty" the same way if they wish.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
