package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrymomot/botguard/pkg/logfile"
	"github.com/dmitrymomot/botguard/pkg/logger"
)

// RunLogsPrune removes day directories and stray log files older than days.
// Zero days uses LOG_RETENTION_DAYS. Supports dry-run and text/JSON output.
func RunLogsPrune(
	ctx context.Context,
	cfg logger.FileConfig,
	log *logger.Logger,
	out io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}
	if days == 0 {
		days = cfg.RetentionDays
	}

	rot := logfile.NewRotator(cfg.Dir)
	report, err := log.PruneLogs(ctx, rot, days, logfile.DryRun(dryRun))
	if err != nil {
		return fmt.Errorf("failed to prune logs: %w", err)
	}

	if format == formatJSON {
		return writeJSON(out, map[string]any{
			"root":    rot.Root(),
			"days":    days,
			"dry_run": dryRun,
			"count":   len(report.Removed),
			"removed": report.Removed,
		})
	}
	return outputPruneText(out, report, days)
}

func outputPruneText(out io.Writer, report logfile.Report, days int) error {
	verb := "Removed"
	if report.DryRun {
		verb = "Dry-run mode: would remove"
	}
	if _, err := fmt.Fprintf(out, "%s %d expired log entr%s older than %d day(s)\n",
		verb, len(report.Removed), plural(len(report.Removed)), days); err != nil {
		return err
	}
	for _, e := range report.Removed {
		if _, err := fmt.Fprintf(out, "  %s\n", e.Path); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
