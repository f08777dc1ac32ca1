package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value in the backend.
var ErrNotFound = errors.New("key not found")

// KV is the durable local storage used for the cart snapshot and user
// preferences. Values are plain text so a user can inspect their own
// state. Implementations: file-per-key under a state directory, and redis.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Well-known keys.
const (
	KeyCart  = "cart"
	KeyTheme = "theme"
)
