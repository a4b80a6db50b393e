package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays cast
	SamplesPerPixel int           // Samples taken for every pixel
	Bands           int           // Number of row bands
	Workers         int           // Number of parallel workers
	Duration        time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// BandCompletion reports a finished band to progress callbacks
type BandCompletion struct {
	BandID     int // Band index, top band first
	MinRow     int // First row of the band (0 = top)
	MaxRow     int // One past the last row
	BandNumber int // Completion order (1-based)
	TotalBands int // Total number of bands in the render
}
