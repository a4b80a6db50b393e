package renderer

import (
	"fmt"
	"time"
)

// Render renders the whole image using a fixed pool of workers, each band of
// rows going to one worker. It blocks until every band is finished. When
// bandCallback is non-nil it is called on the calling goroutine as bands complete.
func (rt *Raytracer) Render(bandCallback func(BandCompletion)) (*PixelBuffer, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	numWorkers := rt.config.workers()
	bands := NewBandGrid(rt.config.Height, numWorkers, rt.config.Seed)
	output := NewPixelBuffer(rt.config.Width, rt.config.Height)

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel in %d bands (using %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, len(bands), numWorkers)

	pool := NewWorkerPool(rt, numWorkers, len(bands))
	pool.Start()

	for _, band := range bands {
		pool.SubmitTask(BandTask{Band: band, Output: output})
	}

	// Wait for all bands; the join happens before any pixel is handed back
	pixels := 0
	for i := 0; i < len(bands); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		pixels += result.Pixels

		if bandCallback != nil {
			band := bands[result.BandID]
			bandCallback(BandCompletion{
				BandID:     band.ID,
				MinRow:     band.MinRow,
				MaxRow:     band.MaxRow,
				BandNumber: i + 1,
				TotalBands: len(bands),
			})
		}
	}
	pool.Stop()

	stats := RenderStats{
		TotalPixels:     pixels,
		TotalSamples:    pixels * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Bands:           len(bands),
		Workers:         numWorkers,
		Duration:        time.Since(startTime),
	}

	rt.logger.Printf("Render completed in %v (%.0f samples/sec)\n", stats.Duration, stats.SamplesPerSecond())

	return output, stats, nil
}
