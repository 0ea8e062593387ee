package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ptdn/hoso-portal/internal/config"
	"github.com/ptdn/hoso-portal/internal/domain/application"
	"github.com/ptdn/hoso-portal/internal/jsonfile"
	"github.com/ptdn/hoso-portal/internal/metrics"
	"github.com/ptdn/hoso-portal/internal/repository"
	"github.com/ptdn/hoso-portal/internal/sqlite"
	"github.com/ptdn/hoso-portal/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureStoreDir(cfg.Store.Path); err != nil {
		logger.Error("failed to prepare store path", "error", err)
		os.Exit(1)
	}

	repo, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	m := metrics.New()

	apps := application.NewService(repo, logger)
	if err := apps.Load(context.Background()); err != nil {
		logger.Error("failed to load applications", "error", err)
		os.Exit(1)
	}

	router := transport.NewServer(apps, cfg.Admin.Secret, logger, m)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "store", cfg.Store.Driver)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func openStore(cfg config.Config, logger *slog.Logger) (repository.ApplicationRepository, func(), error) {
	switch cfg.Store.Driver {
	case "sqlite":
		db, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewApplicationRepository(db), func() { db.Close() }, nil
	default:
		return jsonfile.New(cfg.Store.Path, logger), func() {}, nil
	}
}

func ensureStoreDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
