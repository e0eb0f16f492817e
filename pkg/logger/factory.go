package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/botguard/pkg/environment"
	"github.com/dmitrymomot/botguard/pkg/redact"
)

// Masker removes sensitive values from a message. *redact.Redactor
// implements it.
type Masker interface {
	Mask(text string) string
}

// Sink receives every formatted, masked, uncolored line that passed the level
// filter. *logfile.Queue implements it.
type Sink interface {
	Enqueue(line string)
}

// Option configures logger creation.
type Option func(*config)

// WithLevel sets the initial minimum level. It can be changed later with
// Logger.SetLevel.
func WithLevel(l Level) Option {
	return func(c *config) { c.level = l }
}

// WithConsole sets the console writer. Nil disables console output.
func WithConsole(w io.Writer) Option {
	return func(c *config) { c.console = w }
}

// WithColor forces ANSI colors on or off for the console.
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.color = &enabled
	}
}

// WithColorMode resolves colors against the console writer when the logger
// is built.
func WithColorMode(mode ColorMode) Option {
	return func(c *config) { c.colorMode = mode }
}

// WithRedactor replaces the baseline redaction rules. Nil is ignored so the
// pipeline can never run unmasked by accident.
func WithRedactor(m Masker) Option {
	return func(c *config) {
		if m != nil {
			c.masker = m
		}
	}
}

// WithSink sets the file side of the pipeline.
func WithSink(s Sink) Option {
	return func(c *config) { c.sink = s }
}

// WithClock replaces time.Now for line timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithAttr adds static attributes to every record logged through Slog.
// Empty attribute lists are ignored to avoid allocation overhead.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers functions that inject dynamic attributes
// from context into records logged through Slog.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue is a convenience wrapper adding a context value extractor.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithEnvironment applies per-environment defaults: debug level in
// development, info elsewhere. Slog records logged with a context carrying an
// environment get an "env" attribute.
func WithEnvironment(env environment.Environment) Option {
	return func(c *config) {
		if env.IsDevelopment() {
			c.level = LevelDebug
		} else {
			c.level = LevelInfo
		}
		c.extractors = append(c.extractors, environment.LoggerExtractor())
	}
}

type config struct {
	level      Level
	console    io.Writer
	color      *bool
	colorMode  ColorMode
	masker     Masker
	sink       Sink
	now        func() time.Time
	attrs      []slog.Attr
	extractors []ContextExtractor
}

func defaultConfig() *config {
	return &config{
		level:     LevelInfo,
		console:   os.Stdout,
		colorMode: ColorAuto,
		masker:    redact.Default(),
		now:       time.Now,
	}
}

// New creates a Logger. Without options it writes masked INFO+ lines to
// stdout, colored when stdout is a terminal, and has no file sink.
func New(opts ...Option) *Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	color := cfg.colorMode.Enabled(cfg.console)
	if cfg.color != nil {
		color = *cfg.color
	}

	l := &Logger{
		console:    cfg.console,
		color:      color && cfg.console != nil,
		masker:     cfg.masker,
		sink:       cfg.sink,
		now:        cfg.now,
		attrs:      cfg.attrs,
		extractors: cfg.extractors,
	}
	l.level.Store(int32(cfg.level))
	return l
}
