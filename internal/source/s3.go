package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

// S3Config holds configuration for an S3 source.
type S3Config struct {
	URL      string // s3://bucket/prefix
	Endpoint string // For MinIO compatibility
	Region   string
}

// objectGetter is the subset of the S3 client used for reads.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads objects below a bucket prefix.
type S3 struct {
	client objectGetter
	bucket string
	prefix string
}

// ParseS3URL splits an s3://bucket/prefix location into bucket and key prefix.
func ParseS3URL(raw string) (bucket, prefix string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 location %q: %w", raw, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: expected s3://bucket/prefix", raw)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// NewS3 creates an S3 source. A non-empty endpoint selects path-style MinIO addressing.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	bucket, prefix, err := ParseS3URL(cfg.URL)
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "http://" + endpoint
		}
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	log.Debug().Str("bucket", bucket).Str("prefix", prefix).Str("endpoint", cfg.Endpoint).Msg("using S3 source")
	return newS3WithClient(client, bucket, prefix), nil
}

func newS3WithClient(client objectGetter, bucket, prefix string) *S3 {
	return &S3{client: client, bucket: bucket, prefix: prefix}
}

// key returns the object key for a file name.
func (s *S3) key(name string) string {
	name = strings.TrimLeft(strings.ReplaceAll(name, "\\", "/"), "/")
	if s.prefix == "" {
		return path.Clean(name)
	}
	return path.Join(s.prefix, name)
}

// Location returns the s3:// URL of the named object.
func (s *S3) Location(name string) string {
	return S3Scheme + s.bucket + "/" + s.key(name)
}

// Open fetches the named object. A missing key is reported as fs.ErrNotExist.
func (s *S3) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", s.Location(name), fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to download %s: %w", s.Location(name), err)
	}
	return out.Body, nil
}
