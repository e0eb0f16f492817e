package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/botguard/pkg/secrets"
)

// newCodec derives the key up front so a missing ENCRYPTION_KEY fails the
// command instead of producing output.
func newCodec(cfg secrets.Config, log *slog.Logger, strict bool) (*secrets.Codec, error) {
	keys := secrets.NewKeyring(cfg, secrets.WithKeyringLogger(log))
	if err := keys.Check(); err != nil {
		return nil, err
	}

	mode := cfg.DecryptMode
	if strict {
		mode = secrets.Strict
	}
	return secrets.NewCodec(keys,
		secrets.WithDecryptMode(mode),
		secrets.WithCodecLogger(log),
	), nil
}

// readValue returns value, or the whole of in without its trailing newline
// when value is empty.
func readValue(value string, in io.Reader) (string, error) {
	if value != "" {
		return value, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// RunEncrypt seals value (or stdin) and prints the envelope.
func RunEncrypt(cfg secrets.Config, log *slog.Logger, in io.Reader, out io.Writer, value string) error {
	codec, err := newCodec(cfg, log, false)
	if err != nil {
		return err
	}

	plaintext, err := readValue(value, in)
	if err != nil {
		return err
	}

	sealed, err := codec.Encrypt(plaintext)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, sealed)
	return err
}

// RunDecrypt opens value (or stdin) and prints the plaintext. With strict a
// value that fails to decrypt is an error instead of being echoed back.
func RunDecrypt(cfg secrets.Config, log *slog.Logger, in io.Reader, out io.Writer, value string, strict bool) error {
	codec, err := newCodec(cfg, log, strict)
	if err != nil {
		return err
	}

	stored, err := readValue(value, in)
	if err != nil {
		return err
	}

	if stored != "" && !secrets.IsEnvelope(stored) {
		log.Info("value is not encrypted, printed as stored")
	}

	plaintext, err := codec.Decrypt(stored)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, plaintext)
	return err
}
