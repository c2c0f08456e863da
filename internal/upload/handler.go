package upload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/storage"
	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/watcher"
)

const sidecarPrefix = "Original path: "

// ObjectStorage writes local files to object storage.
type ObjectStorage interface {
	UploadFile(ctx context.Context, key, localPath string) error
}

// Handler turns one creation event into at most two uploads: the file
// itself, then a sidecar holding its original path.
// It keeps no state between events.
type Handler struct {
	objectStorage ObjectStorage
	bucket        string
	sidecarDir    string

	now       func() time.Time
	newPrefix func(time.Time) model.KeyPrefix
}

func NewHandler(objectStorage ObjectStorage, bucket, sidecarDir string) *Handler {
	return &Handler{
		objectStorage: objectStorage,
		bucket:        bucket,
		sidecarDir:    sidecarDir,
		now:           time.Now,
		newPrefix:     model.NewKeyPrefix,
	}
}

// OnCreated is the watcher callback. Failures are logged by Process.
func (h *Handler) OnCreated(ctx context.Context, event watcher.Event) {
	_ = h.Process(ctx, event)
}

// Process runs the upload steps for event in order and stops at the first
// failure. Directories yield no results and no log lines.
func (h *Handler) Process(ctx context.Context, event watcher.Event) []Result {
	if event.IsDir {
		return nil
	}

	fileName := filepath.Base(event.Path)
	prefix := h.newPrefix(h.now())
	logger := slog.Default().With("event_id", newEventID())

	logger.InfoContext(ctx, "detected file creation", "path", event.Path, "prefix", prefix.String())

	results := make([]Result, 0, 2)

	fileKey := storage.ObjectKey{Prefix: prefix, Name: fileName}.Key()
	if err := h.objectStorage.UploadFile(ctx, fileKey, event.Path); err != nil {
		return append(results, h.fail(ctx, logger, StepUpload, fileName, fileKey, err))
	}
	logger.InfoContext(ctx, "upload complete", "file", fileName, "bucket", h.bucket, "key", fileKey)
	results = append(results, Result{Step: StepUpload, Key: fileKey})

	sidecarName := prefix.SidecarName()
	sidecarKey := storage.SidecarKey(prefix).Key()
	sidecarPath, err := h.writeSidecar(sidecarName, event.Path)
	if err != nil {
		return append(results, h.fail(ctx, logger, StepSidecarWrite, sidecarName, sidecarKey, err))
	}

	if err := h.objectStorage.UploadFile(ctx, sidecarKey, sidecarPath); err != nil {
		return append(results, h.fail(ctx, logger, StepSidecarUpload, sidecarName, sidecarKey, err))
	}
	logger.InfoContext(ctx, "upload complete", "file", sidecarName, "bucket", h.bucket, "key", sidecarKey)

	return append(results, Result{Step: StepSidecarUpload, Key: sidecarKey})
}

// writeSidecar leaves the file in place after upload.
func (h *Handler) writeSidecar(name, originalPath string) (string, error) {
	path := filepath.Join(h.sidecarDir, name)
	if err := os.WriteFile(path, []byte(SidecarContent(originalPath)), 0o644); err != nil {
		return "", fmt.Errorf("write sidecar: %w", err)
	}
	return path, nil
}

func (h *Handler) fail(ctx context.Context, logger *slog.Logger, step Step, fileName, key string, err error) Result {
	logger.ErrorContext(ctx, "upload failed",
		"step", step, "file", fileName, "bucket", h.bucket, "key", key, "error", err)
	return Result{Step: step, Key: key, Err: &StepError{Step: step, Key: key, Err: err}}
}

// SidecarContent is the exact body of the provenance sidecar.
func SidecarContent(originalPath string) string {
	return sidecarPrefix + originalPath
}

func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
