package secrets

import (
	"io"
	"log/slog"
)

// Logger is the logging contract of this package. *slog.Logger satisfies it;
// protection.Layer passes the slog bridge of the leveled pipeline so warnings
// are redacted and persisted like every other line.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

func discardLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
