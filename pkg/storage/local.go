package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStore writes uploads to a directory that the HTTP server exposes as
// static files under urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
	logger    *zap.Logger
}

func NewLocalStore(dir, urlPrefix string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		logger:    logger,
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, filename, contentType string, src io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := objectName(filename, contentType)
	dst := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(src, MaxImageSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = ErrEmptyFile
	}
	if err == nil && n > MaxImageSize {
		err = fmt.Errorf("file exceeds %d bytes", MaxImageSize)
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}

	s.logger.Debug("image stored", zap.String("file", name), zap.Int64("bytes", n))
	return s.urlPrefix + "/" + name, nil
}
