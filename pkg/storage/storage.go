package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sefazor/campus-events-backend/internal/config"
	"go.uber.org/zap"
)

// MaxImageSize caps a single upload.
const MaxImageSize = 5 << 20

var ErrEmptyFile = errors.New("empty file")

// ImageStore persists an uploaded image and returns the URL it is served
// from.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, src io.Reader) (string, error)
}

// New picks the backend named by STORAGE_DRIVER.
func New(cfg *config.Config, logger *zap.Logger) (ImageStore, error) {
	switch cfg.StorageDriver {
	case config.StorageLocal:
		return NewLocalStore(cfg.UploadDir, cfg.Path("/uploads"), logger)
	case config.StorageR2:
		return NewR2Store(cfg.R2, logger)
	case config.StorageImages:
		return NewCloudflareImages(cfg.CloudflareImages, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// objectName returns a collision-free name that keeps a sensible extension.
func objectName(filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" || len(ext) > 5 {
		ext = extensions[contentType]
	}
	return uuid.NewString() + ext
}
