// Package source resolves light curve file names against a base location.
package source

import (
	"context"
	"strings"

	"github.com/huangsam/lightcurve/internal/contract"
)

// S3Scheme prefixes base locations that live in an S3 or MinIO bucket.
const S3Scheme = "s3://"

// New returns the Source matching the configured base location.
func New(ctx context.Context, cfg *contract.Config) (contract.Source, error) {
	if strings.HasPrefix(cfg.BaseDir, S3Scheme) {
		return NewS3(ctx, S3Config{
			URL:      cfg.BaseDir,
			Endpoint: cfg.S3Endpoint,
			Region:   cfg.S3Region,
		})
	}
	return NewLocal(cfg.BaseDir), nil
}
