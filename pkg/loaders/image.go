package loaders

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// EncodePNG writes the buffer as a PNG image
func EncodePNG(w io.Writer, buf *renderer.PixelBuffer) error {
	if err := imaging.Encode(w, buf.ToRGBA(), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the buffer to a PNG file, creating parent directories
func SavePNG(filename string, buf *renderer.PixelBuffer) error {
	return saveImage(filename, buf.ToRGBA())
}

// Thumbnail scales the buffer down to the given width, keeping its aspect ratio
func Thumbnail(buf *renderer.PixelBuffer, width int) image.Image {
	if width <= 0 || width >= buf.Width {
		return buf.ToRGBA()
	}
	return resize.Resize(uint(width), 0, buf.ToRGBA(), resize.Bilinear)
}

// SaveThumbnail writes a scaled-down PNG of the buffer
func SaveThumbnail(filename string, buf *renderer.PixelBuffer, width int) error {
	return saveImage(filename, Thumbnail(buf, width))
}

func saveImage(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, filename); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// LoadImage loads a PNG or JPEG image into a pixel buffer
func LoadImage(filename string) (*renderer.PixelBuffer, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}

	bounds := img.Bounds()
	buf := renderer.NewPixelBuffer(bounds.Dx(), bounds.Dy())

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns 16-bit channels
			buf.Set(x, y, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
		}
	}

	return buf, nil
}
