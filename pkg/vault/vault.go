package vault

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/botguard/pkg/logger"
	"github.com/dmitrymomot/botguard/pkg/secrets"
)

// Vault stores credentials sealed with a secrets.Codec.
type Vault struct {
	store Store
	codec *secrets.Codec
	log   *slog.Logger
}

// Option configures a Vault.
type Option func(*Vault)

// WithLogger sets the logger for reseal progress and per-key failures.
func WithLogger(l *slog.Logger) Option {
	return func(v *Vault) {
		if l != nil {
			v.log = l
		}
	}
}

// New creates a Vault over store.
func New(store Store, codec *secrets.Codec, opts ...Option) *Vault {
	v := &Vault{
		store: store,
		codec: codec,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Put seals plaintext and stores it under key. An empty plaintext is stored
// as is.
func (v *Vault) Put(ctx context.Context, key, plaintext string) error {
	if key == "" {
		return ErrEmptyKey
	}
	sealed, err := v.codec.Encrypt(plaintext)
	if err != nil {
		return err
	}
	return v.store.Put(ctx, key, sealed)
}

// Get returns the plaintext stored under key. Legacy plaintext rows are
// returned unchanged; what happens with rows that fail to decrypt depends on
// the codec's DecryptMode.
func (v *Vault) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	stored, err := v.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return v.codec.Decrypt(stored)
}

// Delete removes key. Missing keys are not an error.
func (v *Vault) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return v.store.Delete(ctx, key)
}

// Keys lists stored keys in ascending order.
func (v *Vault) Keys(ctx context.Context) ([]string, error) {
	return v.store.Keys(ctx)
}

// ResealReport summarizes a Reseal run.
type ResealReport struct {
	DryRun   bool     `json:"dry_run"`
	Scanned  int      `json:"scanned"`
	Sealed   int      `json:"sealed"`
	Empty    int      `json:"empty"`
	Resealed []string `json:"resealed"`
	Failed   []string `json:"failed"`
	Changed  []string `json:"changed"`
}

// Reseal encrypts every legacy plaintext value in place. Values that are
// already sealed or empty are left alone. Sealed values that no longer
// decrypt are reported in Failed and never overwritten, so a wrong key can
// not destroy data. Each write is a Store.Swap against the value that was
// read: a key written concurrently is reported in Changed and keeps the
// newer value. With dryRun nothing is written.
func (v *Vault) Reseal(ctx context.Context, dryRun bool) (ResealReport, error) {
	report := ResealReport{DryRun: dryRun}

	keys, err := v.store.Keys(ctx)
	if err != nil {
		return report, err
	}

	var errs []error
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		stored, err := v.store.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue // deleted since listing
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		report.Scanned++

		res := v.codec.Open(stored)
		switch res.Status {
		case secrets.StatusEmpty:
			report.Empty++
		case secrets.StatusDecrypted:
			report.Sealed++
		case secrets.StatusFailed:
			v.log.WarnContext(ctx, "sealed value does not decrypt, left untouched", logger.SecretKey(key), logger.Error(res.Err))
			report.Failed = append(report.Failed, key)
		case secrets.StatusLegacy:
			if !dryRun {
				sealed, err := v.codec.Encrypt(res.Plaintext)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				swapped, err := v.store.Swap(ctx, key, stored, sealed)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if !swapped {
					v.log.InfoContext(ctx, "value changed during reseal, skipped", logger.SecretKey(key))
					report.Changed = append(report.Changed, key)
					continue
				}
			}
			report.Resealed = append(report.Resealed, key)
		}
	}

	v.log.InfoContext(ctx, "reseal finished",
		slog.Bool("dry_run", dryRun),
		slog.Int("scanned", report.Scanned),
		slog.Int("resealed", len(report.Resealed)),
		slog.Int("failed", len(report.Failed)),
		slog.Int("changed", len(report.Changed)),
	)
	return report, errors.Join(errs...)
}
