package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// WritePPM writes the buffer as a plain-text PPM (P3): a header followed by
// one "r g b" line per pixel, top row first
func WritePPM(w io.Writer, buf *renderer.PixelBuffer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", buf.Width, buf.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for i := 0; i < len(buf.Pix); i += 3 {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2]); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}

// SavePPM writes the buffer to a PPM file, creating parent directories
func SavePPM(filename string, buf *renderer.PixelBuffer) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create PPM file: %w", err)
	}
	defer file.Close()

	if err := WritePPM(file, buf); err != nil {
		return err
	}
	return file.Close()
}

// ReadPPM parses a plain-text PPM (P3) with a maximum value of 255
func ReadPPM(r io.Reader) (*renderer.PixelBuffer, error) {
	br := bufio.NewReader(r)

	var magic string
	var width, height, maxVal int
	if _, err := fmt.Fscan(br, &magic, &width, &height, &maxVal); err != nil {
		return nil, fmt.Errorf("failed to read PPM header: %w", err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("unsupported PPM format %q", magic)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid PPM size %dx%d", width, height)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("unsupported PPM max value %d", maxVal)
	}

	buf := renderer.NewPixelBuffer(width, height)
	for i := range buf.Pix {
		var v int
		if _, err := fmt.Fscan(br, &v); err != nil {
			return nil, fmt.Errorf("failed to read PPM sample %d: %w", i, err)
		}
		if v < 0 || v > maxVal {
			return nil, fmt.Errorf("PPM sample %d out of range: %d", i, v)
		}
		buf.Pix[i] = uint8(v)
	}

	return buf, nil
}
