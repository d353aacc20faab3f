package driven

import "context"

// PropertyStore is a string key-value store.
//
// SetProperty must replace the value atomically: a concurrent GetProperty
// observes either the previous value or the new one, never a partial write.
type PropertyStore interface {
	// SetProperty stores value under key, replacing any previous value.
	SetProperty(ctx context.Context, key, value string) error

	// GetProperty returns the value stored under key.
	// The boolean is false when the key is absent.
	GetProperty(ctx context.Context, key string) (string, bool, error)

	// DeleteProperty removes key. Deleting an absent key is not an error.
	DeleteProperty(ctx context.Context, key string) error

	// Close releases the underlying storage.
	Close() error
}
