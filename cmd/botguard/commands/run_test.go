package commands_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/botguard/cmd/botguard/commands"
	"github.com/dmitrymomot/botguard/pkg/environment"
	"github.com/dmitrymomot/botguard/pkg/logger"
	"github.com/dmitrymomot/botguard/pkg/protection"
	"github.com/dmitrymomot/botguard/pkg/secrets"
	"github.com/dmitrymomot/botguard/pkg/vault"
)

func runConfig(t *testing.T, root string) commands.RunConfig {
	t.Helper()
	return commands.RunConfig{
		Protection: protection.Config{
			Secrets: secrets.Config{
				Env:         environment.Staging,
				Secret:      "s3cr3t",
				Salt:        "run-test",
				DecryptMode: secrets.Lenient,
			},
			Log: logger.FileConfig{
				Dir:           root,
				Level:         logger.LevelDebug,
				RetentionDays: 7,
				Color:         logger.ColorNever,
				PruneSchedule: "@every 1h",
			},
		},
		Vault: commands.VaultConfig{Vault: vault.Config{Backend: vault.BackendMemory}},
	}
}

// currentLog returns the content of the single log file of the run.
func currentLog(t *testing.T, root string) string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(root, "*", "*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	return string(data)
}

func TestRunServe(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	stale := ageEntry(t, root, "20000101_000000.log", 30, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- commands.RunServe(ctx, runConfig(t, root), commands.RunOptions{
			Console:       io.Discard,
			ErrOut:        io.Discard,
			ProbeVault:    true,
			ProbeInterval: 10 * time.Millisecond,
		})
	}()

	require.Eventually(t, func() bool {
		files, _ := filepath.Glob(filepath.Join(root, "*", "*.log"))
		if len(files) != 1 {
			return false
		}
		data, _ := os.ReadFile(files[0])
		return strings.Contains(string(data), "| running")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	assert.NoFileExists(t, stale, "expired logs are pruned at startup")

	content := currentLog(t, root)
	assert.Contains(t, content, "protection layer ready")
	assert.Contains(t, content, "removed expired log file: 20000101_000000.log")
	assert.Contains(t, content, "running")
	assert.Contains(t, content, "env=staging")
	assert.Contains(t, content, "shutting down")
	assert.Contains(t, content, "protection layer stopping")
}

func TestRunServe_InvalidSchedule(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := runConfig(t, root)
	cfg.Protection.Log.PruneSchedule = "every other tuesday"

	err := commands.RunServe(context.Background(), cfg, commands.RunOptions{Console: io.Discard, ErrOut: io.Discard})
	require.Error(t, err)
	assert.Contains(t, currentLog(t, root), "invalid log prune schedule")
}

func TestRunServe_MissingSecret(t *testing.T) {
	t.Parallel()

	cfg := runConfig(t, t.TempDir())
	cfg.Protection.Secrets.Secret = ""

	err := commands.RunServe(context.Background(), cfg, commands.RunOptions{Console: io.Discard, ErrOut: io.Discard})
	require.ErrorIs(t, err, protection.ErrInitFailed)
	require.ErrorIs(t, err, secrets.ErrMissingSecret)
}

func TestRunServe_VaultUnavailable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	vaultCfg := redisVaultConfigAt(mr.Addr())
	mr.Close()

	root := t.TempDir()
	cfg := runConfig(t, root)
	cfg.Vault = vaultCfg

	err := commands.RunServe(context.Background(), cfg, commands.RunOptions{
		Console:    io.Discard,
		ErrOut:     io.Discard,
		ProbeVault: true,
	})
	require.Error(t, err)
	assert.Contains(t, currentLog(t, root), "vault backend unavailable")
}
