package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"golang.org/x/crypto/scrypt"
)

const (
	// KeySize is the derived key length: AES-256.
	KeySize = 32

	// scrypt cost parameters. Changing them changes every derived key.
	scryptN = 1 << 14
	scryptR = 8
	scryptP = 1

	// Development fallback. Never reachable outside environment.Development.
	devPassphrase = "dev-insecure-secret"
	devSalt       = "salt"
)

// DeriveFunc turns a passphrase and salt into a KeySize-byte key.
type DeriveFunc func(passphrase, salt []byte) ([]byte, error)

// Scrypt is the default DeriveFunc.
func Scrypt(passphrase, salt []byte) ([]byte, error) {
	return scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, KeySize)
}

// Keyring derives the encryption key from the configured passphrase on first
// use and keeps it for the lifetime of the process. It is safe for concurrent
// use; the derivation runs at most once per successful call sequence.
type Keyring struct {
	cfg    Config
	log    Logger
	derive DeriveFunc

	mu  sync.Mutex
	key []byte
}

// KeyringOption configures a Keyring.
type KeyringOption func(*Keyring)

// WithKeyringLogger sets the logger used for insecure-configuration warnings.
func WithKeyringLogger(l Logger) KeyringOption {
	return func(k *Keyring) {
		if l != nil {
			k.log = l
		}
	}
}

// WithDeriveFunc replaces scrypt. Used by tests to observe derivations.
func WithDeriveFunc(fn DeriveFunc) KeyringOption {
	return func(k *Keyring) {
		if fn != nil {
			k.derive = fn
		}
	}
}

// NewKeyring creates a Keyring. No derivation happens until Key is called.
func NewKeyring(cfg Config, opts ...KeyringOption) *Keyring {
	k := &Keyring{
		cfg:    cfg,
		log:    discardLogger(),
		derive: Scrypt,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Key returns a copy of the derived key. The caller may zero it after use.
//
// Without a configured secret Key returns ErrMissingSecret, except in
// development where the documented insecure key is derived and a warning is
// logged.
func (k *Keyring) Key() ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.key == nil {
		key, err := k.deriveLocked()
		if err != nil {
			return nil, err
		}
		k.key = key
	}

	out := make([]byte, len(k.key))
	copy(out, k.key)
	return out, nil
}

// Check derives the key eagerly so that a configuration error stops startup
// instead of surfacing on the first request that touches a secret.
func (k *Keyring) Check() error {
	key, err := k.Key()
	if err != nil {
		return err
	}
	clearBytes(key)
	return nil
}

// Close zeroes the cached key. A later Key call derives it again.
func (k *Keyring) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clearBytes(k.key)
	k.key = nil
}

func (k *Keyring) deriveLocked() ([]byte, error) {
	passphrase, salt := k.cfg.Secret, k.cfg.Salt

	if passphrase == "" {
		if !k.cfg.Env.IsDevelopment() {
			return nil, ErrMissingSecret
		}
		k.log.Warn("ENCRYPTION_KEY is not set, using the insecure development key; never run production like this")
		passphrase, salt = devPassphrase, devSalt
	} else {
		if salt == "" {
			salt = DefaultSalt
		}
		if salt == DefaultSalt && k.cfg.Env.IsProduction() {
			k.log.Warn("ENCRYPTION_SALT is not set, the key is derived with the salt shared by all installations")
		}
	}

	key, err := k.derive([]byte(passphrase), []byte(salt))
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	if len(key) != KeySize {
		clearBytes(key)
		return nil, ErrInvalidKeySize
	}
	return key, nil
}

// clearBytes zeroes a byte slice holding key material.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GenerateSecret returns a random 32-byte passphrase, hex encoded, suitable
// for ENCRYPTION_KEY.
func GenerateSecret() (string, error) {
	b := make([]byte, KeySize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	defer clearBytes(b)
	return hex.EncodeToString(b), nil
}
