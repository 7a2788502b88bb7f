package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Enabled:      true,
		Bucket:       "shop-images",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.StorageConfig)
		wantErr string
	}{
		{"missing bucket", func(c *config.StorageConfig) { c.Bucket = "" }, "bucket is required"},
		{"missing access key", func(c *config.StorageConfig) { c.AccessKey = "" }, "access key is required"},
		{"missing secret key", func(c *config.StorageConfig) { c.SecretKey = "" }, "secret key is required"},
		{"default endpoint", func(c *config.StorageConfig) { c.Endpoint = "" }, ""},
		{"default region", func(c *config.StorageConfig) { c.Region = "" }, ""},
		{"bad endpoint", func(c *config.StorageConfig) { c.Endpoint = "http://" }, "invalid storage endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testStorageConfig()
			tt.mutate(cfg)
			s, err := NewS3ObjectStorage(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "shop-images", s.Bucket())
		})
	}

	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		assert.Error(t, err)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"", false, defaultEndpoint},
		{"minio:9000", false, "http://minio:9000"},
		{"minio:9000", true, "https://minio:9000"},
		{"https://s3.example.com", false, "https://s3.example.com"},
	}
	for _, tt := range tests {
		got, err := normalizeEndpoint(tt.endpoint, tt.useSSL)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestS3ObjectStorage_Options(t *testing.T) {
	s, err := NewS3ObjectStorage(testStorageConfig())
	require.NoError(t, err)
	assert.Equal(t, defaultLifetime, s.lifetime)

	s, err = NewS3ObjectStorage(testStorageConfig(), WithLogger(zaptest.NewLogger(t)), WithLifetime(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, s.lifetime)
}

func TestS3ObjectStorage_PresignedURLs(t *testing.T) {
	s, err := NewS3ObjectStorage(testStorageConfig())
	require.NoError(t, err)
	ctx := context.Background()
	key := "products/0b7c/kettle.jpg"

	t.Run("upload", func(t *testing.T) {
		u, expiresAt, err := s.GenerateUploadURL(ctx, key, "image/jpeg", 10*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, u, "localhost:9000")
		assert.Contains(t, u, "shop-images")
		assert.True(t, strings.Contains(u, key) || strings.Contains(u, strings.ReplaceAll(key, "/", "%2F")))
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("download uses the default lifetime", func(t *testing.T) {
		u, expiresAt, err := s.GenerateDownloadURL(ctx, key, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, u)
		assert.WithinDuration(t, time.Now().Add(defaultLifetime), expiresAt, 5*time.Second)
	})

	t.Run("empty keys", func(t *testing.T) {
		_, _, err := s.GenerateUploadURL(ctx, "", "image/png", time.Minute)
		assert.ErrorIs(t, err, errKeyRequired)
		_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
		assert.ErrorIs(t, err, errKeyRequired)
		assert.ErrorIs(t, s.DeleteObject(ctx, ""), errKeyRequired)
		_, err = s.ObjectExists(ctx, "")
		assert.ErrorIs(t, err, errKeyRequired)
	})
}

func TestNew_SelectsBackend(t *testing.T) {
	disabled := testStorageConfig()
	disabled.Enabled = false
	s, err := New(context.Background(), disabled, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &StubObjectStorage{}, s)

	// nothing listens on the endpoint; the failed bucket check is only logged
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s, err = New(ctx, testStorageConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &S3ObjectStorage{}, s)

	broken := testStorageConfig()
	broken.Bucket = ""
	_, err = New(context.Background(), broken, zap.NewNop())
	assert.Error(t, err)
}

func TestS3ObjectStorage_MinIO(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MinIO container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "shopadmin",
				"MINIO_ROOT_PASSWORD": "shopadmin-secret",
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "http")
	require.NoError(t, err)

	s, err := NewS3ObjectStorage(&config.StorageConfig{
		Bucket:       "shop-images",
		AccessKey:    "shopadmin",
		SecretKey:    "shopadmin-secret",
		Endpoint:     endpoint,
		UsePathStyle: true,
	})
	require.NoError(t, err)
	require.NoError(t, s.EnsureBucket(ctx))
	require.NoError(t, s.EnsureBucket(ctx))

	key := "products/test/mug.png"
	exists, err := s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	upload, _, err := s.GenerateUploadURL(ctx, key, "image/png", time.Minute)
	require.NoError(t, err)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, upload, strings.NewReader("png"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "image/png")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, key))
	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIsMissing(t *testing.T) {
	assert.True(t, isMissing(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.True(t, isMissing(fmt.Errorf("head: %w", &smithy.GenericAPIError{Code: "NotFound"})))
	assert.False(t, isMissing(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isMissing(errors.New("NoSuchKey")))
}
