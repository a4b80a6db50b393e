package loaders

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

func TestSavePNG_LoadImage(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out", "render.png")
	original := newTestBuffer()

	if err := SavePNG(filename, original); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	loaded, err := LoadImage(filename)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if loaded.Width != 2 || loaded.Height != 2 {
		t.Fatalf("Expected 2x2 image, got %dx%d", loaded.Width, loaded.Height)
	}
	if !bytes.Equal(loaded.Pix, original.Pix) {
		t.Errorf("Pixels changed through PNG: got %v, want %v", loaded.Pix, original.Pix)
	}
}

func TestEncodePNG(t *testing.T) {
	var out bytes.Buffer
	if err := EncodePNG(&out, newTestBuffer()); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}

	r, g, b, _ := img.At(1, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("Top-right pixel should be red, got %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestThumbnail(t *testing.T) {
	buf := renderer.NewPixelBuffer(200, 100)
	for i := range buf.Pix {
		buf.Pix[i] = 128
	}

	testCases := []struct {
		name           string
		width          int
		expectedWidth  int
		expectedHeight int
	}{
		{"half size", 100, 100, 50},
		{"small", 20, 20, 10},
		{"larger than source", 400, 200, 100},
		{"zero keeps size", 0, 200, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			thumb := Thumbnail(buf, tc.width)
			bounds := thumb.Bounds()
			if bounds.Dx() != tc.expectedWidth || bounds.Dy() != tc.expectedHeight {
				t.Errorf("Thumbnail(%d) = %dx%d, want %dx%d",
					tc.width, bounds.Dx(), bounds.Dy(), tc.expectedWidth, tc.expectedHeight)
			}

			// A flat image stays flat under bilinear filtering
			r, _, _, _ := thumb.At(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2).RGBA()
			if diff := int(r>>8) - 128; diff < -1 || diff > 1 {
				t.Errorf("Center pixel %d, want 128", r>>8)
			}
		})
	}
}

func TestSaveThumbnail(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "render_thumb.png")
	buf := renderer.NewPixelBuffer(64, 32)

	if err := SaveThumbnail(filename, buf, 16); err != nil {
		t.Fatalf("SaveThumbnail failed: %v", err)
	}

	loaded, err := LoadImage(filename)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if loaded.Width != 16 || loaded.Height != 8 {
		t.Errorf("Expected 16x8 thumbnail, got %dx%d", loaded.Width, loaded.Height)
	}
}

func TestLoadImage_Missing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}
