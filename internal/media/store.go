package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNotConfigured is returned when media hosting is disabled in config.
var ErrNotConfigured = errors.New("media hosting is not configured")

// Store defines the interface for object storage operations.
type Store interface {
	PutObject(ctx context.Context, key string, content io.Reader, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Config contains connection options for the media host. These map to
// the media section of config.yaml.
type Config struct {
	// Endpoint overrides the AWS endpoint for MinIO/R2-style hosts.
	Endpoint string

	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// UsePathStyle addresses the bucket in the URL path instead of the
	// hostname. Required by MinIO.
	UsePathStyle bool

	// PublicBaseURL is the CDN or host prefix public URLs are built from.
	PublicBaseURL string
}

// S3Store implements Store against any S3-compatible API.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store creates a media store from config. Static credentials are
// used when provided, otherwise the default AWS credential chain.
func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	var awsCfg aws.Config
	var err error

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey, cfg.SecretKey, "",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// PutObject uploads content under the given key. Content is buffered
// so the SDK can compute the payload length.
func (s *S3Store) PutObject(ctx context.Context, key string, content io.Reader, contentType string) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("reading upload content: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

// DeleteObject removes an object by key. Missing objects are not an error.
func (s *S3Store) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// PublicURL builds the public URL an uploaded object is served from.
func (s *S3Store) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

// Noop is a Store that accepts nothing; used when media hosting is
// disabled.
type Noop struct{}

// PutObject always fails with ErrNotConfigured.
func (Noop) PutObject(context.Context, string, io.Reader, string) error {
	return ErrNotConfigured
}

// DeleteObject is a no-op.
func (Noop) DeleteObject(context.Context, string) error { return nil }

// PublicURL returns an empty string.
func (Noop) PublicURL(string) string { return "" }
