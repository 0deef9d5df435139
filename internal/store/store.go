package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been set
var ErrNotFound = errors.New("key not found")

// Store persists opaque string values by key
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
