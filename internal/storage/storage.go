package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/torann10/flowboard-sub000/internal/config"
)

// ArtifactStore persists generated report PDFs and hands out time-limited
// download URLs. Implementations must treat uploads as single attempts;
// retry policy belongs to callers.
type ArtifactStore interface {
	// Upload stores the PDF bytes under the artifact id
	Upload(ctx context.Context, id string, data []byte) error

	// Delete removes the stored artifact
	Delete(ctx context.Context, id string) error

	// DownloadURL returns a presigned GET URL for the artifact
	DownloadURL(ctx context.Context, id, contentDisposition, contentType string, ttl time.Duration) (*url.URL, error)
}

// MinioStore is an S3-compatible ArtifactStore backed by minio-go.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore creates a new MinioStore from the service configuration
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &MinioStore{
		client: client,
		bucket: cfg.StorageBucket,
	}, nil
}

// Upload stores the PDF bytes under the artifact id
func (s *MinioStore) Upload(ctx context.Context, id string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, id,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return fmt.Errorf("failed to upload artifact %s: %w", id, err)
	}
	return nil
}

// Delete removes the stored artifact
func (s *MinioStore) Delete(ctx context.Context, id string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete artifact %s: %w", id, err)
	}
	return nil
}

// DownloadURL returns a presigned GET URL for the artifact
func (s *MinioStore) DownloadURL(ctx context.Context, id, contentDisposition, contentType string, ttl time.Duration) (*url.URL, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", contentDisposition)
	params.Set("response-content-type", contentType)

	signed, err := s.client.PresignedGetObject(ctx, s.bucket, id, ttl, params)
	if err != nil {
		return nil, fmt.Errorf("failed to presign artifact %s: %w", id, err)
	}
	return signed, nil
}
