package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Queue depth of the underlying pool; submissions beyond it wait for a free slot
const workerQueueSize = 256

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile     *Tile
	GridSize int
	TaskID   int
	Sink     PixelSink
	Results  chan<- TileResult // Must be buffered for every task of the pass
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool runs tile tasks on a bounded set of reusable goroutines
type WorkerPool struct {
	shared     *sharedPool
	renderer   *TileRenderer
	numWorkers int
}

// sharedPool is one process-wide automation pool and the queue slots that
// throttle submissions to it. Its workers never exit, so pools are kept and
// reused by every renderer asking for the same worker count.
type sharedPool struct {
	pool  worker.DynamicWorkerPool
	slots chan struct{}
}

var (
	sharedPoolsMu sync.Mutex
	sharedPools   = make(map[int]*sharedPool)
)

// sharedWorkerPool returns the pool for numWorkers, creating it on first use
func sharedWorkerPool(numWorkers int) *sharedPool {
	sharedPoolsMu.Lock()
	defer sharedPoolsMu.Unlock()

	sp, ok := sharedPools[numWorkers]
	if !ok {
		sp = &sharedPool{
			pool:  worker.NewDynamicWorkerPool(numWorkers, workerQueueSize, 1*time.Second),
			slots: make(chan struct{}, workerQueueSize),
		}
		sharedPools[numWorkers] = sp
	}
	return sp
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Pools with the same worker count share their goroutines.
func NewWorkerPool(renderer *TileRenderer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		shared:     sharedWorkerPool(numWorkers),
		renderer:   renderer,
		numWorkers: numWorkers,
	}
}

// SubmitTask queues a tile. The result, including a recovered panic as an
// error, is delivered on task.Results.
func (wp *WorkerPool) SubmitTask(task TileTask) {
	slots := wp.shared.slots
	slots <- struct{}{}

	wp.shared.pool.SubmitTask(worker.Task{
		ID: task.TaskID,
		Do: func() (any, error) {
			defer func() { <-slots }()

			result := wp.run(task)
			task.Results <- result
			return nil, result.Error
		},
	})
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run renders one tile, turning a panic into an error result
func (wp *WorkerPool) run(task TileTask) (result TileResult) {
	result.TaskID = task.TaskID
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("tile %d panicked: %v", task.Tile.ID, r)
		}
	}()

	result.Stats = wp.renderer.RenderTileBounds(task.Tile.Bounds, task.GridSize, task.Sink)
	return result
}
