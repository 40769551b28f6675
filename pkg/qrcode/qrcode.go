package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 1024
)

// QRService renders share links as PNG QR codes.
type QRService struct{}

func NewQRService() *QRService {
	return &QRService{}
}

// ClampSize keeps a requested size within the supported range. Zero picks
// the default.
func ClampSize(size int) int {
	switch {
	case size == 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// GeneratePNG encodes url as a PNG of size x size pixels.
func (s *QRService) GeneratePNG(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty url")
	}

	png, err := qrcode.Encode(url, qrcode.Medium, ClampSize(size))
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}
