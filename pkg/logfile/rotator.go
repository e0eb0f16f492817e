package logfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DayLayout names the per-day directory.
	DayLayout = "2006-01-02"
	// FileLayout names the per-process file inside the day directory.
	FileLayout = "20060102_150405"

	// DefaultRoot is the log root used when none is configured.
	DefaultRoot = "logs"
	// DefaultRetentionDays is how long day directories are kept by default.
	DefaultRetentionDays = 7

	fileExt = ".log"
	dirPerm = 0o755
)

// Rotator lays out log files by day and removes expired ones.
//
//	<root>/<YYYY-MM-DD>/<YYYYMMDD_HHMMSS>.log
//
// The file for a process is chosen once at start; it is never swapped while
// the process runs.
type Rotator struct {
	root string
	now  func() time.Time
}

// RotatorOption configures a Rotator.
type RotatorOption func(*Rotator)

// WithClock replaces time.Now as the reference for retention thresholds.
func WithClock(now func() time.Time) RotatorOption {
	return func(r *Rotator) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRotator creates a Rotator rooted at root (DefaultRoot when empty).
func NewRotator(root string, opts ...RotatorOption) *Rotator {
	if root == "" {
		root = DefaultRoot
	}
	r := &Rotator{root: root, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the log root directory.
func (r *Rotator) Root() string {
	return r.root
}

// Path returns the log file path for a process started at start and creates
// its day directory.
func (r *Rotator) Path(start time.Time) (string, error) {
	dir := filepath.Join(r.root, start.Format(DayLayout))
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", errors.Join(ErrCreateDir, err)
	}
	return filepath.Join(dir, start.Format(FileLayout)+fileExt), nil
}

// Entry is one top-level item of the log root selected by Prune.
type Entry struct {
	Path    string    `json:"path"`
	Dir     bool      `json:"dir"`
	ModTime time.Time `json:"mod_time"`
}

// Report describes the outcome of a Prune call.
type Report struct {
	Threshold time.Time `json:"threshold"`
	DryRun    bool      `json:"dry_run"`
	Removed   []Entry   `json:"removed"`
}

type pruneOptions struct {
	dryRun bool
}

// PruneOption configures a Prune call.
type PruneOption func(*pruneOptions)

// DryRun reports what would be removed without touching the file system.
func DryRun(enabled bool) PruneOption {
	return func(o *pruneOptions) {
		o.dryRun = enabled
	}
}

// Prune removes top-level day directories and stray *.log files whose
// modification time is older than days*24h. Other files are left alone.
// A missing root yields an empty report.
//
// Failures on individual entries do not stop the sweep; they are joined into
// the returned error (wrapping ErrPruneFailed) and the report still lists
// every entry that was removed.
func (r *Rotator) Prune(ctx context.Context, days int, opts ...PruneOption) (Report, error) {
	if days < 1 {
		return Report{}, fmt.Errorf("%w: got %d", ErrInvalidRetention, days)
	}

	var o pruneOptions
	for _, opt := range opts {
		opt(&o)
	}

	report := Report{
		Threshold: r.now().Add(-time.Duration(days) * 24 * time.Hour),
		DryRun:    o.dryRun,
	}

	entries, err := os.ReadDir(r.root)
	if errors.Is(err, fs.ErrNotExist) {
		return report, nil
	}
	if err != nil {
		return report, errors.Join(ErrPruneFailed, err)
	}

	var errs []error
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if !e.IsDir() && !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !e.IsDir() && !info.Mode().IsRegular() {
			continue
		}
		if !info.ModTime().Before(report.Threshold) {
			continue
		}

		entry := Entry{
			Path:    filepath.Join(r.root, e.Name()),
			Dir:     e.IsDir(),
			ModTime: info.ModTime(),
		}
		if !o.dryRun {
			if err := os.RemoveAll(entry.Path); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		report.Removed = append(report.Removed, entry)
	}

	if len(errs) > 0 {
		return report, errors.Join(append([]error{ErrPruneFailed}, errs...)...)
	}
	return report, nil
}
