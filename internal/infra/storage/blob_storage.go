// Package storage persists uploaded avatar images in object storage.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers resolved from the bucket URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

// blobAvatarStorage implements service.AvatarStorage on a gocloud.dev bucket.
type blobAvatarStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// StorageParams holds dependencies for AvatarStorage, injected by Fx
type StorageParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewAvatarStorage opens the avatar bucket from configuration.
// Returns nil when avatar storage is not configured; registration then keeps
// the client-provided avatar reference as-is.
func NewAvatarStorage(params StorageParams) (service.AvatarStorage, error) {
	cfg := params.Config.Avatar
	if cfg == nil || cfg.BucketURL == "" {
		params.Logger.Info("Avatar storage not configured, uploads disabled")

		return nil, nil
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open avatar bucket %s", cfg.BucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing avatar bucket")

			return errors.WithStack(bucket.Close())
		},
	})

	params.Logger.Info("Avatar storage initialized",
		slog.String("bucket_url", cfg.BucketURL),
	)

	return &blobAvatarStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload streams the avatar into the bucket under a fresh UUID-based key.
func (s *blobAvatarStorage) Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	key := uuid.New().String() + strings.ToLower(path.Ext(filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		writer.Close()

		return "", errors.Wrap(err, "failed to write avatar content")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize avatar upload")
	}

	s.logger.Debug("Avatar uploaded",
		slog.String("key", key),
		slog.String("content_type", contentType),
	)

	if s.publicBaseURL == "" {
		return key, nil
	}

	return s.publicBaseURL + "/" + key, nil
}
