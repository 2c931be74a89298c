package storage

import (
	"context"
	"fmt"

	"lunor.shop/app/internal/config"
)

// New builds the configured backend.
func New(ctx context.Context, cfg config.Storage) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.LocalDir, cfg.LocalURLPrefix), nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBaseURL == "" {
			return nil, fmt.Errorf("storage: S3_REGION, S3_BUCKET and S3_PUBLIC_BASE_URL are required for s3")
		}
		return NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})

	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
