package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"telemed/config"
)

type S3Storage struct {
	client *minio.Client
	cfg    config.S3Config
	logger *zap.Logger
}

func NewS3Storage(cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing S3 client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket existence: %w", err)
	}

	if !exists {
		err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("creating bucket: %w", err)
		}
	}

	return &S3Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64) (string, error) {
	if size <= 0 {
		return "", errors.New("empty file data")
	}

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, reader, size, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("uploading file to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, objectName)
	return url, nil
}

func (s *S3Storage) Delete(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}

	objectName, err := s.objectName(fileURL)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("deleting file from S3: %w", err)
	}
	return nil
}

func (s *S3Storage) Get(ctx context.Context, fileURL string) ([]byte, error) {
	objectName, err := s.objectName(fileURL)
	if err != nil {
		return nil, err
	}

	object, err := s.client.GetObject(ctx, s.cfg.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching file from S3: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("reading file from S3: %w", err)
	}
	return data, nil
}

func (s *S3Storage) PresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error) {
	objectName, err := s.objectName(fileURL)
	if err != nil {
		return "", err
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("generating presigned URL: %w", err)
	}
	return presignedURL.String(), nil
}

func (s *S3Storage) objectName(fileURL string) (string, error) {
	if fileURL == "" {
		return "", errors.New("empty file URL")
	}

	parts := strings.Split(fileURL, "/")
	if len(parts) < 4 || !strings.Contains(parts[2], "amazonaws.com") {
		return "", fmt.Errorf("malformed file URL: %s", fileURL)
	}
	return strings.Join(parts[3:], "/"), nil
}
