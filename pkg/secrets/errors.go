package secrets

import "errors"

var (
	// ErrMissingSecret is a configuration error: ENCRYPTION_KEY is empty outside
	// development. Startup must stop instead of encrypting with a guessable key.
	ErrMissingSecret = errors.New("missing required env: ENCRYPTION_KEY")

	// Key derivation errors
	ErrKeyDerivationFailed = errors.New("key derivation failed")
	ErrInvalidKeySize      = errors.New("invalid key size: must be 32 bytes")

	// Encryption/decryption errors
	ErrEncryptionFailed = errors.New("encryption failed")
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrNotEnvelope means the value does not have the iv:tag:ciphertext shape.
	// Decrypt treats such values as legacy plaintext, never as a failure.
	ErrNotEnvelope = errors.New("value is not a cipher envelope")

	ErrUnknownDecryptMode = errors.New("unknown decrypt mode")
)
