package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// FileConfig is the environment configuration of the logging pipeline.
type FileConfig struct {
	Dir             string    `env:"LOG_DIR" envDefault:"logs"`
	Level           Level     `env:"LOG_LEVEL" envDefault:"info"`
	RetentionDays   int       `env:"LOG_RETENTION_DAYS" envDefault:"7"`
	Color           ColorMode `env:"LOG_COLOR" envDefault:"auto"`
	RedactRulesFile string    `env:"LOG_REDACT_RULES_FILE"`
	PruneSchedule   string    `env:"LOG_PRUNE_SCHEDULE" envDefault:"@daily"`
	MaxSizeMB       int       `env:"LOG_MAX_SIZE_MB" envDefault:"0"`
}

// ColorMode controls ANSI colors on the console.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UnmarshalText parses LOG_COLOR.
func (m *ColorMode) UnmarshalText(text []byte) error {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(string(text)))); mode {
	case "":
		*m = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
		*m = mode
	default:
		return fmt.Errorf("%w: %q", ErrUnknownColorMode, text)
	}
	return nil
}

// Enabled resolves the mode for w. Auto enables colors only when w is a
// terminal.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
