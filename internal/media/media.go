// Package media stores user-supplied images such as profile pictures.
package media

import (
	"context"

	"github.com/Anway001/AI-Memory-Space/internal/config"
)

// LocalPublicPrefix is the route local uploads are served from.
const LocalPublicPrefix = "/uploads"

// NewUploader prefers S3 when a bucket is configured, then the local upload dir.
func NewUploader(ctx context.Context, cfg *config.Config) (Uploader, error) {
	if cfg.S3Bucket != "" {
		return NewS3Uploader(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PublicURL:       cfg.S3PublicURL,
			KeyPrefix:       cfg.S3KeyPrefix,
			ForcePathStyle:  cfg.S3ForcePathStyle,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	}
	if cfg.UploadDir != "" {
		return NewLocalUploader(cfg.UploadDir, LocalPublicPrefix)
	}
	return Disabled(), nil
}
