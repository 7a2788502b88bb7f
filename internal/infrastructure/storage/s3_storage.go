// Package storage keeps product and content images in S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultEndpoint = "http://localhost:9000"
	defaultRegion   = "us-east-1"
	defaultLifetime = 15 * time.Minute
)

var (
	errKeyRequired = errors.New("storage key is required")

	_ catalogapp.ObjectStorageService = (*S3ObjectStorage)(nil)
)

// S3ObjectStorage hands out presigned URLs so clients move image bytes
// directly to and from the bucket
type S3ObjectStorage struct {
	client   *s3.Client
	presign  *s3.PresignClient
	bucket   string
	lifetime time.Duration
	logger   *zap.Logger
}

type S3Option func(*S3ObjectStorage)

func WithLogger(logger *zap.Logger) S3Option {
	return func(s *S3ObjectStorage) { s.logger = logger }
}

// WithLifetime sets the URL lifetime used when a caller passes none
func WithLifetime(d time.Duration) S3Option {
	return func(s *S3ObjectStorage) { s.lifetime = d }
}

// NewS3ObjectStorage creates a client for the configured bucket. An empty
// endpoint points at a local MinIO.
func NewS3ObjectStorage(cfg *config.StorageConfig, opts ...S3Option) (*S3ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	for field, value := range map[string]string{"bucket": cfg.Bucket, "access key": cfg.AccessKey, "secret key": cfg.SecretKey} {
		if value == "" {
			return nil, fmt.Errorf("storage %s is required", field)
		}
	}
	endpoint, err := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	s := &S3ObjectStorage{
		client:   client,
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
		lifetime: cfg.PresignExpiration,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.lifetime <= 0 {
		s.lifetime = defaultLifetime
	}
	return s, nil
}

func normalizeEndpoint(endpoint string, useSSL bool) (string, error) {
	if endpoint == "" {
		return defaultEndpoint, nil
	}
	if !strings.Contains(endpoint, "://") {
		scheme := "http://"
		if useSSL {
			scheme = "https://"
		}
		endpoint = scheme + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid storage endpoint %q", endpoint)
	}
	return endpoint, nil
}

// isMissing reports whether err is S3's answer for an absent bucket or key
func isMissing(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NotFound", "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}

// EnsureBucket creates the bucket when it does not exist
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if !isMissing(err) {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}

	s.logger.Info("Creating image bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "BucketAlreadyOwnedByYou" {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// GenerateUploadURL presigns a PUT of storageKey restricted to contentType
func (s *S3ObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	return s.sign(storageKey, expiresIn, func(ttl time.Duration) (string, error) {
		req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(storageKey),
			ContentType: aws.String(contentType),
		}, s3.WithPresignExpires(ttl))
		if err != nil {
			return "", err
		}
		return req.URL, nil
	})
}

// GenerateDownloadURL presigns a GET of storageKey
func (s *S3ObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return s.sign(storageKey, expiresIn, func(ttl time.Duration) (string, error) {
		req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(storageKey),
		}, s3.WithPresignExpires(ttl))
		if err != nil {
			return "", err
		}
		return req.URL, nil
	})
}

func (s *S3ObjectStorage) sign(storageKey string, ttl time.Duration, presign func(time.Duration) (string, error)) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errKeyRequired
	}
	if ttl <= 0 {
		ttl = s.lifetime
	}
	u, err := presign(ttl)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign %s: %w", storageKey, err)
	}
	return u, time.Now().Add(ttl), nil
}

func (s *S3ObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errKeyRequired
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	}); err != nil {
		return fmt.Errorf("delete %s: %w", storageKey, err)
	}
	return nil
}

// ObjectExists reports whether the client finished uploading storageKey
func (s *S3ObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errKeyRequired
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	switch {
	case err == nil:
		return true, nil
	case isMissing(err):
		return false, nil
	default:
		return false, fmt.Errorf("head %s: %w", storageKey, err)
	}
}

func (s *S3ObjectStorage) Bucket() string {
	return s.bucket
}
