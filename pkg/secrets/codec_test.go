package secrets_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/botguard/pkg/environment"
	"github.com/dmitrymomot/botguard/pkg/secrets"
)

var envelopePattern = `^[0-9a-f]{32}:[0-9a-f]{32}:[0-9a-f]+$`

func newKeyring(t *testing.T, secret string) *secrets.Keyring {
	t.Helper()
	keys := secrets.NewKeyring(secrets.Config{
		Env:    environment.Production,
		Secret: secret,
		Salt:   secrets.DefaultSalt,
	})
	require.NoError(t, keys.Check())
	return keys
}

// flipHex replaces the hex digit at index i with a different one.
func flipHex(s string, i int) string {
	repl := byte('0')
	if s[i] == '0' {
		repl = '1'
	}
	return s[:i] + string(repl) + s[i+1:]
}

func TestCodec_EncryptScenario(t *testing.T) {
	t.Parallel()

	codec := secrets.NewCodec(newKeyring(t, "s3cr3t"))

	out, err := codec.Encrypt("hello")
	require.NoError(t, err)
	assert.Regexp(t, envelopePattern, out)

	plain, err := codec.Decrypt(out)
	require.NoError(t, err)
	assert.Equal(t, "hello", plain)
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := secrets.NewCodec(newKeyring(t, "s3cr3t"))

	tests := []struct {
		name  string
		input string
	}{
		{"ascii", "cookie2=abc; _m_h5_tk=xyz"},
		{"unicode", "闲鱼 cookie ✓"},
		{"colons", "a:b:c"},
		{"long", strings.Repeat("x", 4096)},
		{"single byte", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sealed, err := codec.Encrypt(tt.input)
			require.NoError(t, err)
			assert.Regexp(t, envelopePattern, sealed)
			assert.True(t, secrets.IsEnvelope(sealed))

			plain, err := codec.Decrypt(sealed)
			require.NoError(t, err)
			assert.Equal(t, tt.input, plain)
		})
	}
}

func TestCodec_EmptyIsIdentity(t *testing.T) {
	t.Parallel()

	codec := secrets.NewCodec(newKeyring(t, "s3cr3t"), secrets.WithDecryptMode(secrets.Strict))

	out, err := codec.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = codec.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.Equal(t, secrets.StatusEmpty, codec.Open("").Status)
}

func TestCodec_FreshIVPerCall(t *testing.T) {
	t.Parallel()

	codec := secrets.NewCodec(newKeyring(t, "s3cr3t"))

	a, err := codec.Encrypt("same")
	require.NoError(t, err)
	b, err := codec.Encrypt("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, strings.Split(a, ":")[0], strings.Split(b, ":")[0])
}

func TestCodec_LegacyPassThrough(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	codec := secrets.NewCodec(newKeyring(t, "s3cr3t"),
		secrets.WithDecryptMode(secrets.Strict),
		secrets.WithCodecLogger(log),
	)

	inputs := []string{
		"plain-cookie-value",
		"a:b",
		"not:hex:here",
		"00:11:22",
		strings.Repeat("0", 32) + ":" + strings.Repeat("0", 32) + ":",
		"a:b:c:d",
	}

	for _, in := range inputs {
		res := codec.Open(in)
		assert.Equal(t, secrets.StatusLegacy, res.Status, in)
		assert.Equal(t, in, res.Plaintext)

		out, err := codec.Decrypt(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, out)
	}
	assert.Empty(t, log.Errors())
	assert.Empty(t, log.Warns())
}

func TestCodec_TamperResilience(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	codec := secrets.NewCodec(newKeyring(t, "s3cr3t"), secrets.WithCodecLogger(log))

	sealed, err := codec.Encrypt("session-cookie")
	require.NoError(t, err)

	tagAt := 33     // first hex digit of the tag
	ctAt := 33 + 33 // first hex digit of the ciphertext

	for name, tampered := range map[string]string{
		"tag":        flipHex(sealed, tagAt),
		"ciphertext": flipHex(sealed, ctAt),
		"iv":         flipHex(sealed, 0),
	} {
		res := codec.Open(tampered)
		assert.Equal(t, secrets.StatusFailed, res.Status, name)
		assert.ErrorIs(t, res.Err, secrets.ErrDecryptionFailed)

		out, err := codec.Decrypt(tampered)
		require.NoError(t, err, name)
		assert.Equal(t, tampered, out, "lenient mode returns the stored value")
	}
	assert.Len(t, log.Warns(), 3)
}

func TestCodec_StrictMode(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	codec := secrets.NewCodec(newKeyring(t, "s3cr3t"),
		secrets.WithDecryptMode(secrets.Strict),
		secrets.WithCodecLogger(log),
	)
	assert.Equal(t, secrets.Strict, codec.Mode())

	sealed, err := codec.Encrypt("session-cookie")
	require.NoError(t, err)

	out, err := codec.Decrypt(flipHex(sealed, 40))
	require.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	assert.Empty(t, out)
	assert.Len(t, log.Errors(), 1)
}

func TestCodec_WrongKey(t *testing.T) {
	t.Parallel()

	sealed, err := secrets.NewCodec(newKeyring(t, "first")).Encrypt("value")
	require.NoError(t, err)

	other := secrets.NewCodec(newKeyring(t, "second"))
	res := other.Open(sealed)
	assert.Equal(t, secrets.StatusFailed, res.Status)
	assert.False(t, res.OK())

	out, err := other.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, sealed, out)
}

func TestCodec_DeterministicWithFixedIV(t *testing.T) {
	t.Parallel()

	keys := newKeyring(t, "s3cr3t")
	iv := bytes.Repeat([]byte{0x01}, secrets.IVSize)

	a, err := secrets.NewCodec(keys, secrets.WithRandom(bytes.NewReader(iv))).Encrypt("hello")
	require.NoError(t, err)
	b, err := secrets.NewCodec(keys, secrets.WithRandom(bytes.NewReader(iv))).Encrypt("hello")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, strings.Repeat("01", secrets.IVSize)+":"))
}

func TestCodec_EncryptFailures(t *testing.T) {
	t.Parallel()

	t.Run("missing secret", func(t *testing.T) {
		t.Parallel()

		log := &recordingLogger{}
		keys := secrets.NewKeyring(secrets.Config{Env: environment.Production})
		codec := secrets.NewCodec(keys, secrets.WithCodecLogger(log))

		out, err := codec.Encrypt("hello")
		require.ErrorIs(t, err, secrets.ErrEncryptionFailed)
		require.ErrorIs(t, err, secrets.ErrMissingSecret)
		assert.Empty(t, out)
		assert.Len(t, log.Errors(), 1)
	})

	t.Run("random source exhausted", func(t *testing.T) {
		t.Parallel()

		codec := secrets.NewCodec(newKeyring(t, "s3cr3t"), secrets.WithRandom(bytes.NewReader(nil)))
		_, err := codec.Encrypt("hello")
		require.ErrorIs(t, err, secrets.ErrEncryptionFailed)
	})

	t.Run("nil key provider", func(t *testing.T) {
		t.Parallel()

		_, err := secrets.NewCodec(nil).Encrypt("hello")
		require.ErrorIs(t, err, secrets.ErrMissingSecret)
	})
}

func TestCodec_LenientWithoutKey(t *testing.T) {
	t.Parallel()

	sealed, err := secrets.NewCodec(newKeyring(t, "s3cr3t")).Encrypt("value")
	require.NoError(t, err)

	codec := secrets.NewCodec(secrets.NewKeyring(secrets.Config{Env: environment.Production}))
	out, err := codec.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, sealed, out)
}

func TestDecryptMode_UnmarshalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    secrets.DecryptMode
		wantErr error
	}{
		{"", secrets.Lenient, nil},
		{"lenient", secrets.Lenient, nil},
		{" STRICT ", secrets.Strict, nil},
		{"paranoid", "", secrets.ErrUnknownDecryptMode},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			var m secrets.DecryptMode
			err := m.UnmarshalText([]byte(tt.in))
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "empty", secrets.StatusEmpty.String())
	assert.Equal(t, "legacy", secrets.StatusLegacy.String())
	assert.Equal(t, "decrypted", secrets.StatusDecrypted.String())
	assert.Equal(t, "failed", secrets.StatusFailed.String())
	assert.Equal(t, "unknown", secrets.Status(42).String())
}
