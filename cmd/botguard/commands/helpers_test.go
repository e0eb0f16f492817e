package commands_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/botguard/pkg/environment"
	"github.com/dmitrymomot/botguard/pkg/secrets"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLog(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func secretsConfig(secret string) secrets.Config {
	return secrets.Config{
		Env:         environment.Production,
		Secret:      secret,
		Salt:        secrets.DefaultSalt,
		DecryptMode: secrets.Lenient,
	}
}

// ageEntry creates a log day directory (or a file when dir is false) under
// root and backdates it by days.
func ageEntry(t *testing.T, root, name string, days int, dir bool) string {
	t.Helper()
	path := filepath.Join(root, name)
	if dir {
		require.NoError(t, os.MkdirAll(path, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(path, "20000101_000000.log"), []byte("x\n"), 0o644))
	} else {
		require.NoError(t, os.MkdirAll(root, 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	}
	mtime := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}
