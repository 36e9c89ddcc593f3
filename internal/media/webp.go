// Package media normalizes uploaded salon pictures to WebP.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	ContentType = "image/webp"

	DefaultMaxEdge = 1200
	DefaultQuality = 80

	// Limits on the declared size of an upload, checked before decoding.
	MaxSourceEdge   = 10000
	MaxSourcePixels = 40_000_000
)

var ErrUnsupportedImage = errors.New("unsupported image")

// ToWebP decodes a JPEG, PNG, GIF or WebP image, shrinks it so the longest
// edge is at most maxEdge pixels and re-encodes it as lossy WebP.
func ToWebP(r io.Reader, maxEdge int, quality float32) ([]byte, error) {
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	img := Fit(src, maxEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func checkDimensions(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxSourceEdge || h > MaxSourceEdge || w*h > MaxSourcePixels {
		return fmt.Errorf("%w: %dx%d exceeds the size limit", ErrUnsupportedImage, w, h)
	}
	return nil
}

// Fit scales src down, keeping its aspect ratio. Images already small
// enough are returned unchanged.
func Fit(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return src
	}

	if w >= h {
		h = max(1, h*maxEdge/w)
		w = maxEdge
	} else {
		w = max(1, w*maxEdge/h)
		h = maxEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
