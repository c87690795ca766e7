package infra

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/voicesketch/voicesketch-server/internal/ports"
)

type s3Client struct {
	client *minio.Client
	bucket string
}

func NewS3Client() (ports.ObjectStore, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET")
	region := os.Getenv("S3_REGION")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: true,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	// fail fast if the bucket is missing
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}

	return &s3Client{
		client: client,
		bucket: bucket,
	}, nil
}

func (s *s3Client) Download(ctx context.Context, remotePath, localPath string) error {
	err := s.client.FGetObject(ctx, s.bucket, remotePath, localPath, minio.GetObjectOptions{})
	if err != nil {
		return &ports.StoreError{Op: "download", Key: remotePath, Err: err}
	}
	return nil
}

func (s *s3Client) Upload(ctx context.Context, localPath, remotePath, contentType string) error {
	_, err := s.client.FPutObject(ctx, s.bucket, remotePath, localPath, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"uploaded-at": time.Now().Format(time.RFC3339)},
	})
	if err != nil {
		return &ports.StoreError{Op: "upload", Key: remotePath, Err: err}
	}
	return nil
}

func (s *s3Client) SignURL(ctx context.Context, remotePath string, ttl time.Duration) (string, error) {
	// presigning is a local operation, so check existence explicitly
	if _, err := s.client.StatObject(ctx, s.bucket, remotePath, minio.StatObjectOptions{}); err != nil {
		return "", &ports.StoreError{Op: "sign", Key: remotePath, Err: err}
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, remotePath, ttl, nil)
	if err != nil {
		return "", &ports.StoreError{Op: "sign", Key: remotePath, Err: err}
	}
	return u.String(), nil
}
