package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
)

// MinIOStore keeps uploads as objects in a single bucket
type MinIOStore struct {
	client     *minio.Client
	bucketName string
	region     string
}

// NewMinIOStore connects to the configured endpoint and creates the bucket
// if it does not exist yet
func NewMinIOStore(ctx context.Context, cfg config.StorageConfig) (*MinIOStore, error) {
	var creds *credentials.Credentials

	// without static keys fall back to the AWS chain (env, shared file, IAM)
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{},
		})
	} else {
		creds = credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &MinIOStore{
		client:     client,
		bucketName: cfg.BucketName,
		region:     cfg.Region,
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return store, nil
}

func (m *MinIOStore) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucketName)
	if err != nil {
		return err
	}

	if !exists {
		return m.client.MakeBucket(ctx, m.bucketName, minio.MakeBucketOptions{
			Region: m.region,
		})
	}

	return nil
}

// Save uploads r under name. size may be -1 when unknown.
func (m *MinIOStore) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	if err := validateName(name); err != nil {
		return err
	}

	_, err := m.client.PutObject(ctx, m.bucketName, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

// Open returns the object body. Missing objects are reported eagerly so the
// caller can answer 404 before writing headers.
func (m *MinIOStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	obj, err := m.client.GetObject(ctx, m.bucketName, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, m.translate(name, err)
	}

	if _, err := obj.Stat(); err != nil {
		_ = obj.Close() //nolint:errcheck // stat error takes precedence
		return nil, m.translate(name, err)
	}
	return obj, nil
}

// Delete removes the object. S3 semantics make removing a missing key a no-op.
func (m *MinIOStore) Delete(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return m.client.RemoveObject(ctx, m.bucketName, name, minio.RemoveObjectOptions{})
}

// Health checks the bucket is reachable
func (m *MinIOStore) Health(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", m.bucketName)
	}
	return nil
}

func (m *MinIOStore) translate(name string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", photo.ErrBlobNotFound, name)
	}
	return err
}
