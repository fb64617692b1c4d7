package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage holds consultation attachments. Implementations return a
// stable URL from Upload that the other methods accept back.
type FileStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64) (string, error)

	Delete(ctx context.Context, fileURL string) error

	Get(ctx context.Context, fileURL string) ([]byte, error)

	PresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error)
}
