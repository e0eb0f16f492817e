package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/botguard/pkg/pg"
	"github.com/dmitrymomot/botguard/pkg/redis"
	"github.com/dmitrymomot/botguard/pkg/secrets"
	"github.com/dmitrymomot/botguard/pkg/vault"
)

// VaultConfig is everything needed to open the vault from the environment.
type VaultConfig struct {
	Vault   vault.Config
	Secrets secrets.Config
	Redis   redis.Config
	PG      pg.Config
}

// Backend is an opened vault store with its health probe.
type Backend struct {
	Store vault.Store
	Probe func(context.Context) error
	Close func()
}

// OpenBackend connects to the store selected by VAULT_BACKEND.
func OpenBackend(ctx context.Context, cfg VaultConfig) (*Backend, error) {
	switch cfg.Vault.Backend {
	case vault.BackendMemory:
		return &Backend{
			Store: vault.NewMemoryStore(nil),
			Probe: func(context.Context) error { return nil },
			Close: func() {},
		}, nil
	case vault.BackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Store: vault.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Redis.ScanBatchSize),
			Probe: redis.Healthcheck(client),
			Close: func() { _ = client.Close() },
		}, nil
	case vault.BackendPostgres:
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Store: vault.NewPostgresStore(pool),
			Probe: pg.Healthcheck(pool),
			Close: pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", vault.ErrUnknownBackend, cfg.Vault.Backend)
	}
}

// RunVaultMigrate applies the vault schema to PostgreSQL.
func RunVaultMigrate(ctx context.Context, cfg pg.Config, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, vault.Migrations, vault.MigrationsDir, cfg, log); err != nil {
		return err
	}
	log.InfoContext(ctx, "vault migrations applied")
	return nil
}

// RunVaultReseal encrypts legacy plaintext values of the vault in place.
func RunVaultReseal(ctx context.Context, cfg VaultConfig, log *slog.Logger, out io.Writer, dryRun bool, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	codec, err := newCodec(cfg.Secrets, log, true)
	if err != nil {
		return err
	}

	report, resealErr := vault.New(backend.Store, codec, vault.WithLogger(log)).Reseal(ctx, dryRun)
	if err := outputReseal(out, report, format); err != nil {
		return errors.Join(resealErr, err)
	}
	if resealErr != nil {
		return fmt.Errorf("reseal incomplete: %w", resealErr)
	}
	return nil
}

func outputReseal(out io.Writer, report vault.ResealReport, format string) error {
	if format == formatJSON {
		return writeJSON(out, report)
	}

	verb := "Resealed"
	if report.DryRun {
		verb = "Dry-run mode: would reseal"
	}
	if _, err := fmt.Fprintf(out, "Scanned %d value(s): %d sealed, %d empty, %d failed\n",
		report.Scanned, report.Sealed, report.Empty, len(report.Failed)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "%s %d legacy value(s)\n", verb, len(report.Resealed)); err != nil {
		return err
	}
	for _, key := range report.Failed {
		if _, err := fmt.Fprintf(out, "  failed: %s\n", key); err != nil {
			return err
		}
	}
	for _, key := range report.Changed {
		if _, err := fmt.Fprintf(out, "  changed during reseal, skipped: %s\n", key); err != nil {
			return err
		}
	}
	return nil
}
