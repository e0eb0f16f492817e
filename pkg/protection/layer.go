package protection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/botguard/pkg/environment"
	"github.com/dmitrymomot/botguard/pkg/logfile"
	"github.com/dmitrymomot/botguard/pkg/logger"
	"github.com/dmitrymomot/botguard/pkg/redact"
	"github.com/dmitrymomot/botguard/pkg/secrets"
)

const (
	appModule    = "App"
	cryptoModule = "Crypto"
)

// Layer owns the encryption and logging components of one process. It
// replaces package-level singletons: everything that logs or touches a
// secret receives the Layer (or one of its parts) explicitly.
type Layer struct {
	RunID   string
	Started time.Time
	Path    string

	Rotator  *logfile.Rotator
	Queue    *logfile.Queue
	Redactor *redact.Redactor
	Logger   *logger.Logger
	Keyring  *secrets.Keyring
	Codec    *secrets.Codec

	env       environment.Environment
	retention int
	closed    atomic.Bool
}

// Option configures New.
type Option func(*options)

type options struct {
	console io.Writer
	errOut  io.Writer
	now     func() time.Time
}

// WithConsole replaces stdout as the console of the logger. Nil disables it.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// WithErrorOutput sets where file write failures are reported. They cannot
// go through the logger itself, which would enqueue into the failing file.
func WithErrorOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.errOut = w
		}
	}
}

// WithClock replaces time.Now for the process start, line timestamps and
// retention thresholds.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New builds the layer: chooses the process log file, starts its write
// queue, loads redaction rules, creates the logger and derives the
// encryption key. A missing ENCRYPTION_KEY outside development fails here,
// before anything is served.
func New(ctx context.Context, cfg Config, opts ...Option) (*Layer, error) {
	o := options{console: os.Stdout, errOut: os.Stderr, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	redactor, err := redact.FromFile(cfg.Log.RedactRulesFile)
	if err != nil {
		return nil, errors.Join(ErrInitFailed, err)
	}

	started := o.now()
	rot := logfile.NewRotator(cfg.Log.Dir, logfile.WithClock(o.now))
	path, err := rot.Path(started)
	if err != nil {
		return nil, errors.Join(ErrInitFailed, err)
	}

	errOut := o.errOut
	queue := logfile.NewQueue(path,
		logfile.WithMaxSize(cfg.Log.MaxSizeMB),
		logfile.WithOnError(func(err error) {
			fmt.Fprintln(errOut, err)
		}),
	)

	log := logger.New(
		logger.WithLevel(cfg.Log.Level),
		logger.WithConsole(o.console),
		logger.WithColorMode(cfg.Log.Color),
		logger.WithRedactor(redactor),
		logger.WithSink(queue),
		logger.WithClock(o.now),
		logger.WithContextExtractors(environment.LoggerExtractor()),
	)

	cryptoLog := log.Slog(cryptoModule)
	keys := secrets.NewKeyring(cfg.Secrets, secrets.WithKeyringLogger(cryptoLog))
	if err := keys.Check(); err != nil {
		log.Module(cryptoModule).Errorf("encryption key unavailable: %v", err)
		return nil, errors.Join(ErrInitFailed, err, queue.Close(ctx))
	}

	retention := cfg.Log.RetentionDays
	if retention < 1 {
		retention = logfile.DefaultRetentionDays
	}

	l := &Layer{
		RunID:    uuid.NewString(),
		Started:  started,
		Path:     path,
		Rotator:  rot,
		Queue:    queue,
		Redactor: redactor,
		Logger:   log,
		Keyring:  keys,
		Codec: secrets.NewCodec(keys,
			secrets.WithDecryptMode(cfg.Secrets.DecryptMode),
			secrets.WithCodecLogger(cryptoLog),
		),
		env:       cfg.Secrets.Env,
		retention: retention,
	}

	l.Slog(appModule).Info("protection layer ready",
		logger.RunID(l.RunID),
		logger.Path(path),
		slog.String("env", l.env.String()),
		slog.String("level", log.Level().String()),
		slog.String("decrypt_mode", string(l.Codec.Mode())),
		slog.Any("redact_rules", len(redactor.Rules())),
	)
	return l, nil
}

// Module returns a module logger.
func (l *Layer) Module(name string) *logger.Module {
	return l.Logger.Module(name)
}

// Slog returns a *slog.Logger writing through the pipeline under name.
func (l *Layer) Slog(name string) *slog.Logger {
	return l.Logger.Slog(name)
}

// Context attaches the layer's environment to ctx so slog records carry it.
func (l *Layer) Context(ctx context.Context) context.Context {
	return environment.WithContext(ctx, l.env)
}

// Retention returns the configured retention in days.
func (l *Layer) Retention() int {
	return l.retention
}

// PruneLogs removes log entries older than the configured retention.
func (l *Layer) PruneLogs(ctx context.Context, dryRun bool) (logfile.Report, error) {
	return l.Logger.PruneLogs(ctx, l.Rotator, l.retention, logfile.DryRun(dryRun))
}

// Close zeroes the key, drains pending log lines and closes the log file.
// A second call returns ErrClosed.
func (l *Layer) Close(ctx context.Context) error {
	if !l.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	l.Slog(appModule).Info("protection layer stopping",
		logger.RunID(l.RunID),
		logger.Duration(time.Since(l.Started).Round(time.Second)),
	)
	l.Keyring.Close()
	return l.Queue.Close(ctx)
}
