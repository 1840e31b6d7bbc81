package driven

import "context"

// KeyValueStore defines the driven port for the client-local persistent
// key-value store. Values are opaque strings.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns ("", nil) if the key is not present.
	Get(ctx context.Context, key string) (string, error)

	// Set stores or replaces the value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Update atomically replaces the value under key with the result of fn.
	// fn receives the current value ("" when missing). If fn returns an
	// error nothing is written and the error is returned unchanged.
	Update(ctx context.Context, key string, fn func(current string) (string, error)) error
}
