package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	PortfolioMaxEdge = 1600
	AvatarMaxEdge    = 400

	// MaxImagePixels caps the decoded raster; headers above it are refused
	// before any pixel data is read.
	MaxImagePixels = 40_000_000
)

var ErrUnsupportedImage = errors.New("unsupported image")

// ImageEncoder turns an uploaded file into something a page can embed.
type ImageEncoder interface {
	Encode(ctx context.Context, name string, data []byte) (string, error)
}

// ThumbnailEncoder decodes an image, bounds it to MaxEdge on either side
// and returns it as a JPEG data URL.
type ThumbnailEncoder struct {
	MaxEdge uint
	Quality int
}

func NewThumbnailEncoder(maxEdge uint) *ThumbnailEncoder {
	return &ThumbnailEncoder{MaxEdge: maxEdge, Quality: 85}
}

func (e *ThumbnailEncoder) Encode(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, name, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return "", fmt.Errorf("%w: %s: %dx%d exceeds %d pixels", ErrUnsupportedImage, name, cfg.Width, cfg.Height, MaxImagePixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, name, err)
	}

	thumb := resize.Thumbnail(e.MaxEdge, e.MaxEdge, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: e.Quality}); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
