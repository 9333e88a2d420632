package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/file-comparator/internal/backup"
	"github.com/crucial707/file-comparator/internal/config"
	"github.com/crucial707/file-comparator/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogFormat)

	database, err := db.Connect(cfg)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Migrate(db.URL(cfg)); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backupDone := make(chan struct{})
	if cfg.BackupEnabled {
		go func() {
			backup.NewRunner(cfg).Schedule(ctx)
			close(backupDone)
		}()
	} else {
		close(backupDone)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(database, cfg),
	}

	serverErr := make(chan error, 1)
	go func() {
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			slog.Info("starting HTTPS server", "port", cfg.Port)
			serverErr <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			slog.Info("starting HTTP server", "port", cfg.Port)
			serverErr <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
		<-backupDone
	}
}

// setupLogger configures the process-wide slog handler per LOG_FORMAT.
func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
