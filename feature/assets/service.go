package assets

import (
	"context"
	"io"
	"strings"

	"item-simulator/core/apperr"
	"item-simulator/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service streams client asset files from object storage.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new assets service.
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{client: client, bucket: bucket, logger: logger}
}

// Asset is an object stream plus the metadata needed to serve it.
type Asset struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Get fetches a single asset by object path.
func (s *Service) Get(ctx context.Context, path string) (*Asset, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" || strings.Contains(path, "..") {
		return nil, apperr.New(apperr.KindInvalid, "invalid asset path")
	}

	// Stat first: it distinguishes a missing object from a transport error
	// before any body bytes are committed to the response.
	info, err := s.client.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, apperr.Newf(apperr.KindNotFound, "asset %s does not exist", path)
		}
		return nil, apperr.Wrap(apperr.KindStorage, "failed to stat asset", err)
	}

	body, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to fetch asset", err)
	}

	return &Asset{
		Body:        body,
		ContentType: info.ContentType,
		Size:        info.Size,
	}, nil
}
