package catalog

import (
	"context"
	"time"
)

// AllowedImageTypes maps the accepted upload content types to file extensions.
// SVG is excluded since it can carry scripts.
var AllowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectStorageService is the object storage port used for product images
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned upload URL and its expiry
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL returns a presigned download URL and its expiry
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageConfig holds presign lifetimes for product images
type ImageConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	MaxImages         int
}

// DefaultImageConfig returns the default image configuration
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
		MaxImages:         20,
	}
}
