package commands

import (
	"fmt"
	"io"

	"github.com/dmitrymomot/botguard/pkg/secrets"
)

// RunKeygen prints a fresh random ENCRYPTION_KEY value.
func RunKeygen(out io.Writer, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	secret, err := secrets.GenerateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	if format == formatJSON {
		return writeJSON(out, map[string]string{"encryption_key": secret})
	}
	_, err = fmt.Fprintf(out, "ENCRYPTION_KEY=%s\n", secret)
	return err
}
