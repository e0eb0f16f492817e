package vault

import (
	"fmt"
	"strings"
)

// Backend selects the Store implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

// UnmarshalText parses VAULT_BACKEND.
func (b *Backend) UnmarshalText(text []byte) error {
	switch v := Backend(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case BackendMemory, BackendRedis, BackendPostgres:
		*b = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, text)
	}
	return nil
}

type Config struct {
	Backend Backend `env:"VAULT_BACKEND" envDefault:"postgres"` // Backend is memory, redis or postgres.
}
