package minio

import (
	"bytes"
	"context"
	"fmt"

	"card-binder/internal/config"
	"card-binder/internal/domain"
	"card-binder/internal/repository/download"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// FileRepository puts exports into an object storage bucket.
type FileRepository struct {
	client  *minio.Client
	bucket  string
	retries retry.Strategy
	logger  *zlog.Zerolog
}

func NewClient(cfg config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

// NewMinIORepository builds the sink. A strategy with fewer than one attempt
// still makes a single put.
func NewMinIORepository(client *minio.Client, bucket string, retries retry.Strategy, logger *zlog.Zerolog) *FileRepository {
	if retries.Attempts < 1 {
		retries.Attempts = 1
	}
	if retries.Backoff < 1 {
		retries.Backoff = 1
	}
	return &FileRepository{
		client:  client,
		bucket:  bucket,
		retries: retries,
		logger:  logger,
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (r *FileRepository) EnsureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("%w: check bucket %s: %v", download.ErrStorageError, r.bucket, err)
	}
	if exists {
		return nil
	}

	if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%w: create bucket %s: %v", download.ErrStorageError, r.bucket, err)
	}

	r.logger.Info().Str("bucket", r.bucket).Msg("Bucket created")
	return nil
}

func (r *FileRepository) Deliver(ctx context.Context, export *domain.Export) error {
	name, err := download.CleanFilename(export.Filename)
	if err != nil {
		return err
	}

	data := export.Raster.Data()
	opts := minio.PutObjectOptions{ContentType: export.Raster.MimeType()}

	err = retry.DoContext(ctx, r.retries, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, putErr := r.client.PutObject(ctx, r.bucket, name, bytes.NewReader(data), int64(len(data)), opts)
		return putErr
	})
	if err != nil {
		return fmt.Errorf("%w: put %s/%s: %v", download.ErrStorageError, r.bucket, name, err)
	}

	r.logger.Info().
		Str("bucket", r.bucket).
		Str("object", name).
		Int64("size", int64(len(data))).
		Msg("Export uploaded")

	return nil
}

func (r *FileRepository) Name() string {
	return "minio"
}
