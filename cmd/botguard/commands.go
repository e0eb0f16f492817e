package main

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/botguard/cmd/botguard/commands"
	"github.com/dmitrymomot/botguard/pkg/config"
	"github.com/dmitrymomot/botguard/pkg/logger"
	"github.com/dmitrymomot/botguard/pkg/pg"
	"github.com/dmitrymomot/botguard/pkg/secrets"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func dryRunFlag(usage string) cli.Flag {
	return &cli.BoolFlag{
		Name:  "dry-run",
		Value: false,
		Usage: usage,
	}
}

// cliLogger builds the console pipeline from LOG_LEVEL and LOG_COLOR.
func cliLogger() (*logger.Logger, error) {
	var cfg logger.FileConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return commands.NewLogger(cfg, os.Stderr), nil
}

func secretsSetup() (secrets.Config, *logger.Logger, error) {
	var cfg secrets.Config
	if err := config.Load(&cfg); err != nil {
		return cfg, nil, err
	}
	log, err := cliLogger()
	return cfg, log, err
}

func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a random ENCRYPTION_KEY",
		Flags: []cli.Flag{formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return commands.RunKeygen(os.Stdout, cmd.String("format"))
		},
	}
}

func encryptCommand() *cli.Command {
	return &cli.Command{
		Name:  "encrypt",
		Usage: "Encrypt a value with the configured key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "value",
				Aliases: []string{"v"},
				Usage:   "Value to encrypt (read from stdin when omitted)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, log, err := secretsSetup()
			if err != nil {
				return err
			}
			return commands.RunEncrypt(cfg, log.Slog("Crypto"), os.Stdin, os.Stdout, cmd.String("value"))
		},
	}
}

func decryptCommand() *cli.Command {
	return &cli.Command{
		Name:  "decrypt",
		Usage: "Decrypt a stored value with the configured key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "value",
				Aliases: []string{"v"},
				Usage:   "Value to decrypt (read from stdin when omitted)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail instead of printing the stored value when it does not decrypt",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, log, err := secretsSetup()
			if err != nil {
				return err
			}
			return commands.RunDecrypt(cfg, log.Slog("Crypto"), os.Stdin, os.Stdout, cmd.String("value"), cmd.Bool("strict"))
		},
	}
}

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Log file maintenance",
		Commands: []*cli.Command{
			{
				Name:  "prune",
				Usage: "Remove log directories and files older than the retention period",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "days",
						Aliases: []string{"d"},
						Usage:   "Retention in days (default: LOG_RETENTION_DAYS)",
					},
					dryRunFlag("Show what would be removed without removing anything"),
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					var cfg logger.FileConfig
					if err := config.Load(&cfg); err != nil {
						return err
					}
					return commands.RunLogsPrune(
						ctx,
						cfg,
						commands.NewLogger(cfg, os.Stderr),
						os.Stdout,
						cmd.Int("days"),
						cmd.Bool("dry-run"),
						cmd.String("format"),
					)
				},
			},
		},
	}
}

func vaultCommand() *cli.Command {
	return &cli.Command{
		Name:  "vault",
		Usage: "Encrypted key/value vault maintenance",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Apply the vault schema to PostgreSQL",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					var cfg pg.Config
					if err := config.Load(&cfg); err != nil {
						return err
					}
					log, err := cliLogger()
					if err != nil {
						return err
					}
					return commands.RunVaultMigrate(ctx, cfg, log.Slog("Vault"))
				},
			},
			{
				Name:  "reseal",
				Usage: "Encrypt values that are still stored as plaintext",
				Flags: []cli.Flag{
					dryRunFlag("Count legacy values without rewriting them"),
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					var cfg commands.VaultConfig
					if err := config.Load(&cfg); err != nil {
						return err
					}
					log, err := cliLogger()
					if err != nil {
						return err
					}
					return commands.RunVaultReseal(ctx, cfg, log.Slog("Vault"), os.Stdout, cmd.Bool("dry-run"), cmd.String("format"))
				},
			},
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Start the protection layer and its housekeeping until interrupted",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "probe-vault",
				Usage: "Periodically check the vault backend connection",
			},
			&cli.DurationFlag{
				Name:  "probe-interval",
				Value: time.Minute,
				Usage: "Interval between vault backend checks",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var cfg commands.RunConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}
			return commands.RunServe(ctx, cfg, commands.RunOptions{
				ProbeVault:    cmd.Bool("probe-vault"),
				ProbeInterval: cmd.Duration("probe-interval"),
			})
		},
	}
}
