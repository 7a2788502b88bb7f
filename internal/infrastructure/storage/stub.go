package storage

import (
	"context"
	"net/url"
	"sync"
	"time"

	catalogapp "github.com/shop/backend/internal/application/catalog"
	infraconfig "github.com/shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const bucketCheckTimeout = 5 * time.Second

var _ catalogapp.ObjectStorageService = (*StubObjectStorage)(nil)

// StubObjectStorage fakes presigned URLs for development without a bucket.
// Every key is reported as uploaded unless it was deleted.
type StubObjectStorage struct {
	BaseURL string

	mu      sync.Mutex
	deleted map[string]struct{}
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		deleted: make(map[string]struct{}),
	}
}

// New returns the S3 storage when enabled and the stub otherwise. An
// unreachable bucket is logged; presigning works without contacting S3.
func New(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (catalogapp.ObjectStorageService, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Object storage disabled, using stub URLs")
		return NewStubObjectStorage(), nil
	}
	s, err := NewS3ObjectStorage(cfg, WithLogger(logger))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()
	if err := s.EnsureBucket(ctx); err != nil {
		logger.Warn("Image bucket check failed", zap.String("bucket", s.Bucket()), zap.Error(err))
	}
	logger.Info("Object storage configured", zap.String("bucket", s.Bucket()))
	return s, nil
}

func (s *StubObjectStorage) link(action, storageKey string, expiresIn time.Duration) (string, time.Time) {
	expiresAt := time.Now().Add(expiresIn)
	q := url.Values{"expires": {expiresAt.UTC().Format(time.RFC3339)}}
	return s.BaseURL + "/" + action + "/" + storageKey + "?" + q.Encode(), expiresAt
}

// GenerateUploadURL returns a fake upload URL
func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errKeyRequired
	}
	s.mu.Lock()
	delete(s.deleted, storageKey)
	s.mu.Unlock()
	u, exp := s.link("upload", storageKey, expiresIn)
	return u, exp, nil
}

// GenerateDownloadURL returns a fake download URL
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errKeyRequired
	}
	u, exp := s.link("download", storageKey, expiresIn)
	return u, exp, nil
}

// DeleteObject forgets storageKey
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[storageKey] = struct{}{}
	return nil
}

// ObjectExists reports true for every key not deleted
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, gone := s.deleted[storageKey]
	return !gone, nil
}
