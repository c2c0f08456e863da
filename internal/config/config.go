package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/storage"
)

const (
	DefaultDirectoryToWatch = "/path/to/directory"
	DefaultRegion           = "us-east-1"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config holds application configuration.
// It is built once at startup and never mutated afterwards.
type Config struct {
	AccessKeyID      string
	SecretAccessKey  string
	S3Endpoint       string
	S3Bucket         string
	S3Region         string
	S3ForcePathStyle bool
	S3Preflight      bool
	SSLVerify        bool
	StorageDriver    string

	DirectoryToWatch string
	SidecarDir       string

	LogFormat string
	LogLevel  string
}

type ErrInvalidEnvVar struct {
	Name  string
	Value string
}

func (e *ErrInvalidEnvVar) Error() string {
	return fmt.Sprintf("environment variable %q has invalid value %q", e.Name, e.Value)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, &ErrInvalidEnvVar{Name: key, Value: v}
	}
	return b, nil
}

// Load reads configuration from environment variables.
// S3_BUCKET and the credentials are not validated here: a bad value
// surfaces on the first upload attempt.
func Load() (*Config, error) {
	config := Config{
		AccessKeyID:      os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey:  os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         getEnv("S3_REGION", DefaultRegion),
		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", storage.DriverMinIO)),
		DirectoryToWatch: getEnv("DIRECTORY_TO_WATCH", DefaultDirectoryToWatch),
		SidecarDir:       getEnv("SIDECAR_DIR", os.TempDir()),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", LogFormatJSON)),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if config.SSLVerify, err = getBool("SSL_VERIFY", true); err != nil {
		return nil, err
	}
	if config.S3ForcePathStyle, err = getBool("S3_FORCE_PATH_STYLE", false); err != nil {
		return nil, err
	}
	if config.S3Preflight, err = getBool("S3_PREFLIGHT", false); err != nil {
		return nil, err
	}

	switch config.StorageDriver {
	case storage.DriverMinIO, storage.DriverS3:
	default:
		return nil, &ErrInvalidEnvVar{Name: "STORAGE_DRIVER", Value: config.StorageDriver}
	}

	switch config.LogFormat {
	case LogFormatJSON, LogFormatText:
	default:
		return nil, &ErrInvalidEnvVar{Name: "LOG_FORMAT", Value: config.LogFormat}
	}

	// A sidecar written into the watched directory would be picked up as a
	// new file and upload forever.
	if samePath(config.SidecarDir, config.DirectoryToWatch) {
		return nil, &ErrInvalidEnvVar{Name: "SIDECAR_DIR", Value: config.SidecarDir}
	}

	return &config, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
