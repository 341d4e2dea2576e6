package renderer

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/transport"
)

// supplementalSeedMix decorrelates the supplemental stream from the primary one
const supplementalSeedMix = 0x5bd1e995

// PathTask is a batch of independent paths along one film position
type PathTask struct {
	TaskID  int     // For deterministic ordering
	S, T    float64 // film coordinates in [0, 1]
	Samples int
	Seed    int64 // seeds the task's private samplers
}

// PathResult contains the summed estimates of a task
type PathResult struct {
	TaskID  int
	Sum     core.Vec3
	Samples int
}

// WorkerPool manages parallel path tracing
type WorkerPool struct {
	taskQueue   chan PathTask
	resultQueue chan PathResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker owns the per-worker estimator state
type Worker struct {
	ID          int
	tracer      *integrator.PathTracer
	camera      *Camera
	taskQueue   chan PathTask
	resultQueue chan PathResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Each worker gets its own PathTracer indexed by its ID.
func NewWorkerPool(scene transport.Scene, camera *Camera, config integrator.Config, numWorkers, queueSize int, opts ...integrator.Option) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize <= 0 {
		queueSize = numWorkers * 4
	}

	wp := &WorkerPool{
		taskQueue:   make(chan PathTask, queueSize),
		resultQueue: make(chan PathResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			tracer:      integrator.NewPathTracer(scene, config, i, opts...),
			camera:      camera,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	core.Logger().Debug("worker pool created", "workers", numWorkers, "queue", queueSize)
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

// SubmitTask submits a task to the worker pool
func (wp *WorkerPool) SubmitTask(task PathTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed result
func (wp *WorkerPool) GetResult() (PathResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Estimate averages samples paths through film position (s, t), split into
// tasks of batchSize paths. Task seeds derive from seed and the task index
// and results are merged in task order, so the estimate does not depend on
// the number of workers. The pool must have been started.
func (wp *WorkerPool) Estimate(s, t float64, samples, batchSize int, seed int64) core.Vec3 {
	if samples <= 0 {
		return core.Vec3{}
	}
	if batchSize <= 0 {
		batchSize = samples
	}
	numTasks := (samples + batchSize - 1) / batchSize

	// Submit from a separate goroutine so a small queue cannot deadlock
	go func() {
		for i := 0; i < numTasks; i++ {
			n := batchSize
			if remaining := samples - i*batchSize; remaining < n {
				n = remaining
			}
			wp.SubmitTask(PathTask{TaskID: i, S: s, T: t, Samples: n, Seed: seed + int64(i)})
		}
	}()

	sums := make([]core.Vec3, numTasks)
	for i := 0; i < numTasks; i++ {
		result, ok := wp.GetResult()
		if !ok {
			break
		}
		sums[result.TaskID] = result.Sum
	}

	total := core.Vec3{}
	for _, sum := range sums {
		total = total.Add(sum)
	}
	return total.Multiply(1.0 / float64(samples))
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(task.Seed)))
		supplemental := core.NewRandomSampler(rand.New(rand.NewSource(task.Seed ^ supplementalSeedMix)))

		ray := w.camera.GetRay(task.S, task.T)
		sum := core.Vec3{}
		for i := 0; i < task.Samples; i++ {
			sum = sum.Add(w.tracer.Trace(ray, sampler, supplemental))
		}

		w.resultQueue <- PathResult{TaskID: task.TaskID, Sum: sum, Samples: task.Samples}
	}
}
