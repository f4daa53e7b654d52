package imageprocessing

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"

	"github.com/jo-hoe/colorstash/internal/common"
)

const MimePNG = "image/png"

// NewSolidPNG renders a width x height image where every pixel equals c and
// returns it PNG-encoded.
func NewSolidPNG(width, height int, c common.Color) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image to PNG: %w", err)
	}
	slog.Debug("NewSolidPNG: rendered image",
		"width", width,
		"height", height,
		"color", c.String(),
		"output_size_bytes", buf.Len())
	return buf.Bytes(), nil
}
