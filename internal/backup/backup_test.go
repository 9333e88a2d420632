package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/file-comparator/internal/config"
)

// fakeDump is a stand-in for pg_dump: a shell script that writes an
// identifiable file wherever -f points.
func fakeDump(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, "fake_pg_dump.sh")
	body := "#!/bin/sh\n" +
		"while [ $# -gt 1 ]; do\n" +
		"  if [ \"$1\" = \"-f\" ]; then out=\"$2\"; fi\n" +
		"  shift\n" +
		"done\n" +
		"echo '-- dump' > \"$out\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake pg_dump: %v", err)
	}
	return script
}

func TestRunner_Run_WritesTimestampedFile(t *testing.T) {
	backupDir := t.TempDir()
	cfg := config.Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBName:     "filecompare",
		DBUser:     "filecompare",
		BackupDir:  backupDir,
		PgDumpPath: fakeDump(t),
	}

	r := NewRunner(cfg)
	r.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := filepath.Join(backupDir, "backup_2025-06-01_12-30-45.sql")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected dump file %s: %v", want, err)
	}
	if !strings.Contains(string(data), "-- dump") {
		t.Errorf("unexpected dump contents: %q", data)
	}
}

func TestRunner_Run_DumpFailure(t *testing.T) {
	cfg := config.Config{
		BackupDir:  t.TempDir(),
		PgDumpPath: "/nonexistent/pg_dump",
	}

	r := NewRunner(cfg)
	if err := r.Run(context.Background()); err == nil {
		t.Fatal("expected error when pg_dump is missing")
	}
}

func TestRunner_Schedule_StopsOnCancel(t *testing.T) {
	cfg := config.Config{
		BackupDir:           t.TempDir(),
		PgDumpPath:          fakeDump(t),
		BackupIntervalHours: 24,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewRunner(cfg).Schedule(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after context cancel")
	}
}
