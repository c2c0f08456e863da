package storage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient implements Uploader using MinIO.
type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

var _ Uploader = (*MinIOClient)(nil)

// NewMinIOClient creates a new MinIO storage client.
func NewMinIOClient(cfg Config) (*MinIOClient, error) {
	host, secure, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	transport, err := minio.DefaultTransport(secure)
	if err != nil {
		return nil, fmt.Errorf("failed to create minio transport: %w", err)
	}
	if !cfg.VerifySSL {
		skipVerify(transport)
	}

	lookup := minio.BucketLookupAuto
	if cfg.ForcePathStyle {
		lookup = minio.BucketLookupPath
	}

	client, err := minio.New(host, &minio.Options{
		Creds:        minioCredentials(cfg, transport),
		Secure:       secure,
		Transport:    transport,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOClient{
		client:     client,
		bucketName: cfg.Bucket,
	}, nil
}

// minioCredentials uses the configured keys, or falls back to the AWS
// environment, the shared credentials file and then the instance role.
func minioCredentials(cfg Config, transport http.RoundTripper) *credentials.Credentials {
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		return credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	}
	return credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{Client: &http.Client{Transport: transport}},
	})
}

// UploadFile stores a local file in MinIO.
func (m *MinIOClient) UploadFile(ctx context.Context, key, localPath string) error {
	_, err := m.client.FPutObject(ctx, m.bucketName, key, localPath, minio.PutObjectOptions{
		ContentType: detectContentType(localPath),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w", err)
	}

	return nil
}

// Preflight verifies the bucket exists. A missing bucket is reported,
// never created.
func (m *MinIOClient) Preflight(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", m.bucketName)
	}

	return nil
}
