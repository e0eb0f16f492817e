// Package main provides the botguard command line: key management,
// encryption helpers, log retention and the vault maintenance tasks.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/botguard/pkg/config"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "botguard",
		Usage:   "Sensitive-data protection for the bot: encryption, redacted logs, vault",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Load environment variables from these files (default: .env when present)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if files := cmd.StringSlice("env-file"); len(files) > 0 {
				return ctx, config.LoadEnv(files...)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			keygenCommand(),
			encryptCommand(),
			decryptCommand(),
			logsCommand(),
			vaultCommand(),
			runCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
