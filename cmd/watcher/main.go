package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/config"
	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/exitcode"
	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/logging"
	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/storage"
	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/upload"
	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/watcher"
)

func main() {
	// Until the config is read, log JSON to stdout
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Ensure environment variables are loaded
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load env vars", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	logging.Setup(cfg.LogFormat, cfg.LogLevel)

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	uploader, err := storage.Open(ctx, storageConfig(cfg))
	if err != nil {
		slog.Error("failed to initialize storage client", "driver", cfg.StorageDriver, "error", err)
		os.Exit(exitcode.StorageError)
	}

	if cfg.S3Preflight {
		if err := uploader.Preflight(ctx); err != nil {
			slog.Error("storage preflight failed", "bucket", cfg.S3Bucket, "error", err)
			os.Exit(exitcode.StorageError)
		}
	}

	if err := run(ctx, cfg, uploader); err != nil {
		slog.Error("failed to watch directory", "path", cfg.DirectoryToWatch, "error", err)
		os.Exit(exitcode.WatchError)
	}

	slog.Info("shutdown complete")
	cancel()
	os.Exit(exitcode.Success)
}

// run watches cfg.DirectoryToWatch until ctx is cancelled. Only a watch
// setup failure is returned; upload failures are logged per file.
func run(ctx context.Context, cfg *config.Config, objectStorage upload.ObjectStorage) error {
	w, err := watcher.New(cfg.DirectoryToWatch)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "watching path", "path", w.Dir())
	slog.InfoContext(ctx, "uploading to bucket", "bucket", "s3://"+cfg.S3Bucket)

	handler := upload.NewHandler(objectStorage, cfg.S3Bucket, cfg.SidecarDir)

	return w.Run(ctx, handler.OnCreated)
}

func storageConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		Driver:         cfg.StorageDriver,
		Endpoint:       cfg.S3Endpoint,
		AccessKey:      cfg.AccessKeyID,
		SecretKey:      cfg.SecretAccessKey,
		Bucket:         cfg.S3Bucket,
		Region:         cfg.S3Region,
		VerifySSL:      cfg.SSLVerify,
		ForcePathStyle: cfg.S3ForcePathStyle,
	}
}
