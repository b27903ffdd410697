package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"filerelay/internal/config"
)

// S3Transferer is the alternative transfer backend: instead of the public GoFile
// service it mirrors the file into an S3-compatible bucket (MinIO, AWS S3) and
// hands out a presigned download URL valid for the link TTL. It is safe for
// concurrent use by multiple goroutines.
type S3Transferer struct {
	client  *minio.Client
	bucket  string
	linkTTL time.Duration
	logger  *slog.Logger
}

// NewS3Transferer creates the S3 backend. It validates connectivity and ensures
// the bucket exists (creates it if missing).
func NewS3Transferer(cfg config.MinIOConfig, linkTTL time.Duration, logger *slog.Logger) (*S3Transferer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &S3Transferer{client: cli, bucket: cfg.Bucket, linkTTL: linkTTL, logger: logger}, nil
}

var _ Transferer = (*S3Transferer)(nil)

// Upload streams the local file into the bucket under a unique key and returns a
// presigned GET URL. Same ownership contract as the GoFile client: the local file
// is removed on every exit path; a single attempt, no internal retry.
func (s *S3Transferer) Upload(ctx context.Context, localPath, name string, size int64, progress ProgressFunc) (string, error) {
	defer s.removeLocal(localPath)

	report(progress, "Starting upload...")

	key := fmt.Sprintf("relay/%s/%s", uuid.NewString(), name)

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout(size))
	defer cancel()

	report(progress, "Uploading to mirror storage...")

	if _, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	}); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", &TransferError{Kind: ErrTimeout, Err: err}
		}
		return "", &TransferError{Kind: ErrConnection, Err: err}
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.linkTTL, url.Values{})
	if err != nil {
		return "", &TransferError{Kind: ErrIncompleteResult, Err: err}
	}
	return u.String(), nil
}

func (s *S3Transferer) removeLocal(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove local file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}
