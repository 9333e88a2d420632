// Package backup runs periodic pg_dump exports of the database.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crucial707/file-comparator/internal/config"
	"github.com/crucial707/file-comparator/internal/metrics"
)

// Runner dumps the configured database into timestamped SQL files.
type Runner struct {
	cfg config.Config

	// now is swappable for tests.
	now func() time.Time
}

// NewRunner returns a Runner for the given config.
func NewRunner(cfg config.Config) *Runner {
	return &Runner{cfg: cfg, now: time.Now}
}

// Run executes one pg_dump into the backup directory. Failures are logged
// and counted; nothing is retried and no client ever sees them.
func (r *Runner) Run(ctx context.Context) error {
	if err := os.MkdirAll(r.cfg.BackupDir, 0o755); err != nil {
		metrics.IncBackupRuns("error")
		return fmt.Errorf("backup dir: %w", err)
	}

	stamp := r.now().Format("2006-01-02_15-04-05")
	outFile := filepath.Join(r.cfg.BackupDir, "backup_"+stamp+".sql")

	cmd := exec.CommandContext(ctx, r.cfg.PgDumpPath,
		"-h", r.cfg.DBHost,
		"-p", r.cfg.DBPort,
		"-U", r.cfg.DBUser,
		"-d", r.cfg.DBName,
		"-f", outFile,
	)
	// Password goes through the environment, never the command line.
	cmd.Env = append(os.Environ(), "PGPASSWORD="+r.cfg.DBPass)

	if out, err := cmd.CombinedOutput(); err != nil {
		metrics.IncBackupRuns("error")
		return fmt.Errorf("pg_dump: %w: %s", err, out)
	}

	metrics.IncBackupRuns("ok")
	slog.Info("database backup written", "file", outFile)
	return nil
}

// Schedule starts a cron job running the dump at the configured interval and
// stops it when ctx is canceled. This is the only backup lifecycle: there is
// no separate at-exit dump. Blocks until shutdown; run it in a goroutine.
func (r *Runner) Schedule(ctx context.Context) {
	c := cron.New()

	spec := fmt.Sprintf("@every %dh", r.cfg.BackupIntervalHours)
	_, err := c.AddFunc(spec, func() {
		if err := r.Run(context.Background()); err != nil {
			slog.Error("scheduled backup failed", "error", err)
		}
	})
	if err != nil {
		slog.Error("backup scheduler: bad interval", "spec", spec, "error", err)
		return
	}

	slog.Info("backup scheduler started", "interval_hours", r.cfg.BackupIntervalHours, "dir", r.cfg.BackupDir)
	c.Start()

	<-ctx.Done()
	stopCtx := c.Stop()
	// Let an in-flight dump finish before returning.
	<-stopCtx.Done()
	slog.Info("backup scheduler stopped")
}
