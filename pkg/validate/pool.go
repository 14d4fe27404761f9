package validate

import (
	"runtime"
	"sync"

	"github.com/strandlight/go-bcsdf/pkg/core"
)

// SampleFunc draws one sample using the batch's generator and reports the
// resulting weight, or false when the model produced no sample.
type SampleFunc func(sg core.Sampler) (core.Vec3, bool)

// BatchTask represents one deterministic batch of Monte-Carlo draws
type BatchTask struct {
	BatchID int   // For deterministic result ordering
	Samples int   // Number of draws in this batch
	Seed    int64 // Per-batch generator seed
}

// BatchResult contains the accumulated statistics from one batch
type BatchResult struct {
	BatchID int
	Acc     Accumulator
}

// WorkerPool runs sample batches in parallel. Each worker owns its own
// sample generator per batch, so batches are independent and the overall
// result is deterministic for a fixed seed regardless of worker count.
type WorkerPool struct {
	taskQueue   chan BatchTask
	resultQueue chan BatchResult
	numWorkers  int
	fn          SampleFunc
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool for up to maxBatches queued tasks
func NewWorkerPool(fn SampleFunc, maxBatches, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan BatchTask, maxBatches),
		resultQueue: make(chan BatchResult, maxBatches),
		numWorkers:  numWorkers,
		fn:          fn,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop signals that no more tasks will arrive and waits for completion
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a batch task to the pool
func (wp *WorkerPool) SubmitTask(task BatchTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed batch result
func (wp *WorkerPool) GetResult() (BatchResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		sg := core.NewSeededSampler(task.Seed)

		var acc Accumulator
		for i := 0; i < task.Samples; i++ {
			if weight, ok := wp.fn(sg); ok {
				acc.AddSample(weight)
			} else {
				acc.AddFailure()
			}
		}

		wp.resultQueue <- BatchResult{BatchID: task.BatchID, Acc: acc}
	}
}
