package vault

import "context"

// Store persists opaque string values by key. Values handed to a Store are
// already sealed; a Store never sees plaintext written through Vault.Put.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys returns all keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
	// Swap replaces the value of key with value only if it still equals old.
	// It reports false, with no error, when the value changed or the key is
	// gone.
	Swap(ctx context.Context, key, old, value string) (bool, error)
}
