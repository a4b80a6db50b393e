package renderer

import (
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Band represents a contiguous run of image rows rendered by one worker
type Band struct {
	ID     int        // Band index, top band first
	MinRow int        // First row (0 = top of image)
	MaxRow int        // One past the last row
	Random *rand.Rand // Band-specific random generator for deterministic results
}

// NewBand creates a band whose random source is derived from the render seed
func NewBand(id, minRow, maxRow int, seed int64) *Band {
	return &Band{
		ID:     id,
		MinRow: minRow,
		MaxRow: maxRow,
		Random: rand.New(rand.NewSource(seed + int64(id))),
	}
}

// Rows returns the number of rows in the band
func (b *Band) Rows() int {
	return b.MaxRow - b.MinRow
}

// NewBandGrid splits height rows into at most numBands bands of
// ceil(height/numBands) rows; the last band may be shorter
func NewBandGrid(height, numBands int, seed int64) []*Band {
	if height <= 0 {
		return nil
	}
	numBands = max(1, numBands)
	rowsPerBand := (height + numBands - 1) / numBands // Ceiling division

	var bands []*Band
	for minRow, id := 0, 0; minRow < height; minRow, id = minRow+rowsPerBand, id+1 {
		bands = append(bands, NewBand(id, minRow, min(minRow+rowsPerBand, height), seed))
	}
	return bands
}

// renderBand fills the band's rows of the output buffer. Bands never overlap,
// so concurrent calls for different bands need no locking.
func (rt *Raytracer) renderBand(camera *geometry.Camera, band *Band, out *PixelBuffer) {
	height := rt.config.Height
	rows := out.Rows(band.MinRow, band.MaxRow)

	for row := band.MinRow; row < band.MaxRow; row++ {
		// Camera t grows upward while buffer rows grow downward
		y := height - 1 - row
		for x := 0; x < rt.config.Width; x++ {
			colorVec := rt.SamplePixel(camera, x, y, band.Random)
			rows.Set(x, row-band.MinRow, vec3ToRGB(colorVec))
		}
	}
}
