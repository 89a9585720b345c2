// Package imaging normalizes captured README rasters into fixed-aspect
// thumbnails.
//
// The transform is deterministic and pure: decode, pad the left and right
// edges with white, then crop the bottom overflow so the result never exceeds
// a 4:3 (width:height) frame. Shorter images keep their original height; the
// compositor never upscales or stretches.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	// Screenshots arrive as PNG, but decoding stays format-agnostic so the
	// compositor also accepts JPEG and GIF test fixtures.
	_ "image/gif"
	_ "image/jpeg"
)

// DefaultPadding is the horizontal margin, in pixels, added to each side.
const DefaultPadding = 2

// ErrInvalidImage reports bytes that cannot be decoded into a usable raster,
// or a raster with non-positive dimensions.
var ErrInvalidImage = errors.New("invalid image")

// Compose decodes raw and produces the padded, top-anchored 4:3 raster.
//
// The output width is always originalWidth + 2*padding. The output height is
// floor(newWidth*3/4) when the original is taller than that, otherwise the
// original height.
func Compose(raw []byte, padding int) (image.Image, error) {
	if padding < 0 {
		padding = 0
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidImage, err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}

	// Drawing onto an opaque RGBA canvas normalizes every decoded color
	// model (paletted, grayscale, alpha-bearing) in one step.
	newWidth := width + 2*padding
	canvas := image.NewRGBA(image.Rect(0, 0, newWidth, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(padding, 0, padding+width, height), src, bounds.Min, draw.Over)

	targetHeight := newWidth * 3 / 4
	if height > targetHeight {
		return canvas.SubImage(image.Rect(0, 0, newWidth, targetHeight)), nil
	}
	return canvas, nil
}

// EncodePNG serializes the composited raster fully in memory so callers can
// perform a single atomic write.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
