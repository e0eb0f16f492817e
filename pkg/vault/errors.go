package vault

import "errors"

var (
	ErrNotFound       = errors.New("vault: secret not found")
	ErrEmptyKey       = errors.New("vault: empty key")
	ErrStoreFailed    = errors.New("vault: store operation failed")
	ErrUnknownBackend = errors.New("vault: unknown backend")
)
