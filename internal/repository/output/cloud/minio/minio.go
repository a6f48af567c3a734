// Package minio stores outputs in an S3-compatible bucket.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"

	"photo-brander/internal/config"
	"photo-brander/internal/domain"
	"photo-brander/internal/repository/output"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/zlog"
)

type FileRepository struct {
	client *minio.Client
	bucket string
	prefix string
	logger *zlog.Zerolog
}

func NewMinIORepository(ctx context.Context, cfg *config.Config, logger *zlog.Zerolog) (*FileRepository, error) {
	mc := cfg.Storage.MinIO

	client, err := minio.New(mc.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
		Secure: mc.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	repo := &FileRepository{
		client: client,
		bucket: mc.Bucket,
		prefix: mc.Prefix,
		logger: logger,
	}

	if err := repo.ensureBucket(ctx); err != nil {
		return nil, err
	}

	logger.Info().
		Str("endpoint", mc.Endpoint).
		Str("bucket", mc.Bucket).
		Str("prefix", mc.Prefix).
		Msg("MinIO output storage ready")

	return repo, nil
}

func (r *FileRepository) ensureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("%w: failed to check bucket %s: %w", output.ErrStorageError, r.bucket, err)
	}
	if exists {
		return nil
	}

	if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%w: failed to create bucket %s: %w", output.ErrStorageError, r.bucket, err)
	}
	r.logger.Info().Str("bucket", r.bucket).Msg("Bucket created")
	return nil
}

// Save uploads data as <prefix>/<name>. An object only becomes visible once
// the upload completes.
func (r *FileRepository) Save(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", output.ErrInvalidName, name)
	}

	key := ObjectKey(r.prefix, name)
	_, err := r.client.PutObject(ctx, r.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: domain.OutputContentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to upload %s: %w", output.ErrStorageError, key, err)
	}

	return r.bucket + "/" + key, nil
}

func ObjectKey(prefix, name string) string {
	return path.Join(prefix, name)
}
