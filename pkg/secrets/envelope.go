package secrets

import (
	"encoding/hex"
	"strings"
)

const (
	// IVSize is the per-message random initialization vector length.
	IVSize = 16
	// TagSize is the GCM authentication tag length.
	TagSize = 16

	envelopeSeparator = ":"
)

// Envelope is the decoded form of an encrypted value:
// "<ivHex>:<tagHex>:<ciphertextHex>", lowercase hex.
type Envelope struct {
	IV         []byte
	Tag        []byte
	Ciphertext []byte
}

// String renders the wire format.
func (e Envelope) String() string {
	return hex.EncodeToString(e.IV) + envelopeSeparator +
		hex.EncodeToString(e.Tag) + envelopeSeparator +
		hex.EncodeToString(e.Ciphertext)
}

// ParseEnvelope decodes s. It returns ErrNotEnvelope unless s has exactly
// three colon-separated hex fields with a 16-byte IV, a 16-byte tag and a
// non-empty ciphertext.
func ParseEnvelope(s string) (Envelope, error) {
	parts := strings.Split(s, envelopeSeparator)
	if len(parts) != 3 {
		return Envelope{}, ErrNotEnvelope
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != IVSize {
		return Envelope{}, ErrNotEnvelope
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != TagSize {
		return Envelope{}, ErrNotEnvelope
	}
	ct, err := hex.DecodeString(parts[2])
	if err != nil || len(ct) == 0 {
		return Envelope{}, ErrNotEnvelope
	}

	return Envelope{IV: iv, Tag: tag, Ciphertext: ct}, nil
}

// IsEnvelope reports whether s would be decrypted rather than passed through.
func IsEnvelope(s string) bool {
	_, err := ParseEnvelope(s)
	return err == nil
}
