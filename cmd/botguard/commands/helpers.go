// Package commands implements the botguard CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/botguard/pkg/logger"
)

const (
	formatText = "text"
	formatJSON = "json"

	cliModule = "Cli"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format %q (valid options: text, json)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewLogger returns the console-only pipeline used by one-shot commands.
// Diagnostics go to w (stderr) so command output on stdout stays clean.
func NewLogger(cfg logger.FileConfig, w io.Writer) *logger.Logger {
	return logger.New(
		logger.WithLevel(cfg.Level),
		logger.WithConsole(w),
		logger.WithColorMode(cfg.Color),
	)
}

// cronLogger adapts slog to robfig/cron's logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, logger.Error(err))...)
}
