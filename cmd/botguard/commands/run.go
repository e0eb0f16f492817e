package commands

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/botguard/pkg/logger"
	"github.com/dmitrymomot/botguard/pkg/protection"
	"github.com/dmitrymomot/botguard/pkg/vault"
)

const (
	runModule    = "Run"
	cronModule   = "Cron"
	vaultModule  = "Vault"
	closeTimeout = 10 * time.Second
)

// RunConfig is the configuration of the run command.
type RunConfig struct {
	Protection protection.Config
	Vault      VaultConfig
}

// RunOptions are the flag-level settings of the run command.
type RunOptions struct {
	Console       io.Writer
	ErrOut        io.Writer
	ProbeVault    bool
	ProbeInterval time.Duration
}

// RunServe starts the protection layer and keeps it alive until ctx is
// canceled: expired logs are pruned at startup and then on
// LOG_PRUNE_SCHEDULE, and the vault backend is probed when requested.
func RunServe(ctx context.Context, cfg RunConfig, opts RunOptions) (err error) {
	var layerOpts []protection.Option
	if opts.Console != nil {
		layerOpts = append(layerOpts, protection.WithConsole(opts.Console))
	}
	if opts.ErrOut != nil {
		layerOpts = append(layerOpts, protection.WithErrorOutput(opts.ErrOut))
	}

	layer, err := protection.New(ctx, cfg.Protection, layerOpts...)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		err = errors.Join(err, layer.Close(closeCtx))
	}()

	ctx = layer.Context(ctx)
	log := layer.Slog(runModule)

	prune := func() {
		if _, err := layer.PruneLogs(ctx, false); err != nil {
			log.WarnContext(ctx, "log pruning failed", logger.Error(err))
		}
	}
	prune()

	cronLog := cronLogger{log: layer.Slog(cronModule)}
	scheduler := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if schedule := cfg.Protection.Log.PruneSchedule; schedule != "" {
		if _, err := scheduler.AddFunc(schedule, prune); err != nil {
			log.ErrorContext(ctx, "invalid log prune schedule", "schedule", schedule, logger.Error(err))
			return err
		}
	}

	var backend *Backend
	if opts.ProbeVault {
		if backend, err = OpenBackend(ctx, cfg.Vault); err != nil {
			log.ErrorContext(ctx, "vault backend unavailable", logger.Error(err))
			return err
		}
		defer backend.Close()
	}

	g, gctx := errgroup.WithContext(ctx)

	scheduler.Start()
	g.Go(func() error {
		<-gctx.Done()
		<-scheduler.Stop().Done()
		return nil
	})

	if backend != nil {
		g.Go(func() error {
			probeVault(gctx, layer, cfg.Vault.Vault.Backend, backend, opts.ProbeInterval)
			return nil
		})
	}

	log.InfoContext(ctx, "running", "prune_schedule", cfg.Protection.Log.PruneSchedule, "retention_days", layer.Retention())
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.InfoContext(ctx, "shutting down")
	return nil
}

func probeVault(ctx context.Context, layer *protection.Layer, name vault.Backend, backend *Backend, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	log := layer.Slog(vaultModule)
	healthy := true

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		err := backend.Probe(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return
		case err != nil:
			log.WarnContext(ctx, "vault backend healthcheck failed", "backend", string(name), logger.Error(err))
			healthy = false
		case !healthy:
			log.InfoContext(ctx, "vault backend recovered", "backend", string(name))
			healthy = true
		}
	}
}
