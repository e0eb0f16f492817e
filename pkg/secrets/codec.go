package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecryptMode selects what Decrypt does when an envelope fails to open.
type DecryptMode string

const (
	// Lenient logs a warning and returns the stored value unchanged, so a key
	// change or a corrupted row degrades to stale data instead of an outage.
	Lenient DecryptMode = "lenient"
	// Strict returns ErrDecryptionFailed.
	Strict DecryptMode = "strict"
)

// UnmarshalText parses DECRYPT_MODE.
func (m *DecryptMode) UnmarshalText(text []byte) error {
	switch DecryptMode(strings.ToLower(strings.TrimSpace(string(text)))) {
	case "", Lenient:
		*m = Lenient
	case Strict:
		*m = Strict
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDecryptMode, text)
	}
	return nil
}

// Status classifies the outcome of Codec.Open.
type Status int

const (
	// StatusEmpty: the input was empty and returned as is.
	StatusEmpty Status = iota
	// StatusLegacy: the input is not an envelope and is plaintext as stored.
	StatusLegacy
	// StatusDecrypted: the envelope was authenticated and decrypted.
	StatusDecrypted
	// StatusFailed: the input looked like an envelope but could not be opened.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLegacy:
		return "legacy"
	case StatusDecrypted:
		return "decrypted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of Codec.Open. Plaintext is only meaningful when
// Status is not StatusFailed; Err is only set when it is.
type Result struct {
	Status    Status
	Plaintext string
	Err       error
}

// OK reports whether Plaintext can be used.
func (r Result) OK() bool {
	return r.Status != StatusFailed
}

// KeyProvider supplies the symmetric key. *Keyring implements it.
type KeyProvider interface {
	Key() ([]byte, error)
}

// Codec encrypts and decrypts strings with AES-256-GCM using the key from a
// KeyProvider. It is stateless apart from configuration and safe for
// concurrent use.
type Codec struct {
	keys   KeyProvider
	mode   DecryptMode
	log    Logger
	random io.Reader
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithDecryptMode sets the failure policy of Decrypt. Unknown modes are ignored.
func WithDecryptMode(mode DecryptMode) CodecOption {
	return func(c *Codec) {
		if mode == Lenient || mode == Strict {
			c.mode = mode
		}
	}
}

// WithCodecLogger sets the logger for encryption and decryption failures.
func WithCodecLogger(l Logger) CodecOption {
	return func(c *Codec) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRandom replaces crypto/rand as the IV source. Tests only.
func WithRandom(r io.Reader) CodecOption {
	return func(c *Codec) {
		if r != nil {
			c.random = r
		}
	}
}

// NewCodec creates a Codec in Lenient mode.
func NewCodec(keys KeyProvider, opts ...CodecOption) *Codec {
	c := &Codec{
		keys:   keys,
		mode:   Lenient,
		log:    discardLogger(),
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the configured decrypt failure policy.
func (c *Codec) Mode() DecryptMode {
	return c.mode
}

// Encrypt seals plaintext into an envelope string. Empty input is returned
// unchanged. Every call uses a fresh random IV. Failures are logged and
// returned: callers must not fall back to storing plaintext.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return plaintext, nil
	}

	env, err := c.seal([]byte(plaintext))
	if err != nil {
		c.log.Error("encryption failed", "error", err)
		return "", errors.Join(ErrEncryptionFailed, err)
	}
	return env.String(), nil
}

// Open decrypts input and reports how the value was interpreted. It never
// logs; Decrypt layers the logging and the failure policy on top.
func (c *Codec) Open(input string) Result {
	if input == "" {
		return Result{Status: StatusEmpty}
	}

	env, err := ParseEnvelope(input)
	if err != nil {
		return Result{Status: StatusLegacy, Plaintext: input}
	}

	plaintext, err := c.open(env)
	if err != nil {
		return Result{Status: StatusFailed, Err: errors.Join(ErrDecryptionFailed, err)}
	}
	return Result{Status: StatusDecrypted, Plaintext: string(plaintext)}
}

// Decrypt returns the plaintext of an envelope. Empty and legacy (non
// envelope) values are returned unchanged. When an envelope cannot be opened,
// Lenient mode logs a warning and returns input as is, Strict mode returns
// ErrDecryptionFailed.
func (c *Codec) Decrypt(input string) (string, error) {
	res := c.Open(input)
	if res.OK() {
		return res.Plaintext, nil
	}

	if c.mode == Strict {
		c.log.Error("decryption failed", "error", res.Err)
		return "", res.Err
	}
	c.log.Warn("decryption failed, returning the stored value unchanged", "error", res.Err)
	return input, nil
}

func (c *Codec) seal(plaintext []byte) (Envelope, error) {
	aead, err := c.aead()
	if err != nil {
		return Envelope{}, err
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return Envelope{}, fmt.Errorf("generate iv: %w", err)
	}

	sealed := aead.Seal(nil, iv, plaintext, nil)
	split := len(sealed) - TagSize
	return Envelope{
		IV:         iv,
		Tag:        sealed[split:],
		Ciphertext: sealed[:split],
	}, nil
}

func (c *Codec) open(env Envelope) ([]byte, error) {
	aead, err := c.aead()
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(env.Ciphertext)+len(env.Tag))
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)

	return aead.Open(nil, env.IV, sealed, nil)
}

// aead builds the cipher from a fresh key copy; the copy is zeroed once the
// AES key schedule has been expanded.
func (c *Codec) aead() (cipher.AEAD, error) {
	if c.keys == nil {
		return nil, ErrMissingSecret
	}
	key, err := c.keys.Key()
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, IVSize)
}
