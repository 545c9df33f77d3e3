package storage

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a small durable key-value interface. The portal core keeps
// per-user client state (onboarding progress, view preferences) under
// fixed namespace keys; values are opaque byte slices, typically JSON.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}
