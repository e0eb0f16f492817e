package logger

import (
	"context"
	"path/filepath"

	"github.com/dmitrymomot/botguard/pkg/logfile"
)

const pruneModule = "Logger"

// PruneLogs removes expired log entries through rot and emits one INFO line
// per removed entry. In dry-run mode the lines say what would be removed.
func (l *Logger) PruneLogs(ctx context.Context, rot *logfile.Rotator, days int, opts ...logfile.PruneOption) (logfile.Report, error) {
	report, err := rot.Prune(ctx, days, opts...)

	m := l.Module(pruneModule)
	for _, e := range report.Removed {
		kind := "file"
		if e.Dir {
			kind = "directory"
		}
		name := filepath.Base(e.Path)
		if report.DryRun {
			m.Infof("would remove expired log %s: %s", kind, name)
			continue
		}
		m.Infof("removed expired log %s: %s", kind, name)
	}
	if err != nil {
		m.Errorf("log retention sweep incomplete: %v", err)
	}
	return report, err
}
