package renderer

import (
	"sync"
)

// BandTask represents a band rendering task for the worker pool
type BandTask struct {
	Band   *Band
	Output *PixelBuffer // Shared output buffer; the band writes only its own rows
}

// BandResult contains the result from rendering a band
type BandResult struct {
	BandID int
	Pixels int
}

// WorkerPool manages parallel band rendering
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan BandResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual band rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan BandTask
	resultQueue chan BandResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks bounds the queue sizes so submitting never blocks.
func NewWorkerPool(raytracer *Raytracer, numWorkers, maxTasks int) *WorkerPool {
	numWorkers = max(1, numWorkers)

	wp := &WorkerPool{
		taskQueue:   make(chan BandTask, maxTasks),
		resultQueue: make(chan BandResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	camera := w.raytracer.scene.GetCamera()
	for task := range w.taskQueue {
		w.raytracer.renderBand(camera, task.Band, task.Output)

		w.resultQueue <- BandResult{
			BandID: task.Band.ID,
			Pixels: task.Band.Rows() * task.Output.Width,
		}
	}
}
