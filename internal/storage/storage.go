package storage

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
)

const (
	DriverMinIO = "minio"
	DriverS3    = "s3"
)

// Config holds S3-compatible connection settings shared by every driver.
type Config struct {
	Driver         string
	Endpoint       string // URL or host[:port]; empty means AWS
	AccessKey      string
	SecretKey      string
	Bucket         string
	Region         string
	VerifySSL      bool
	ForcePathStyle bool
}

// Uploader puts local files into the configured bucket.
type Uploader interface {
	// UploadFile stores the file at localPath under key.
	UploadFile(ctx context.Context, key, localPath string) error

	// Preflight checks that the bucket exists and is reachable.
	Preflight(ctx context.Context) error
}

// Open builds the Uploader for cfg.Driver. It does not contact the
// service, so a wrong bucket or bad credentials only show up on upload.
func Open(ctx context.Context, cfg Config) (Uploader, error) {
	switch cfg.Driver {
	case "", DriverMinIO:
		return NewMinIOClient(cfg)
	case DriverS3:
		return NewS3Client(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// detectContentType returns a MIME type based on file extension.
func detectContentType(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return "application/octet-stream"
	}

	ct := mime.TypeByExtension(ext)
	if ct == "" {
		return "application/octet-stream"
	}

	return ct
}
