package driver

import (
	"runtime"
	"sync"

	"github.com/nestmc/nestmc/cellgroup"
)

// workerPool advances cell groups across a fixed number of goroutines,
// generalising the teacher repo's channel-based StreamScheduler
// (runtime/runtime.go) from opcode task dispatch to per-group advance
// dispatch: a fixed worker count, one shared job channel, joined with a
// sync.WaitGroup. Groups never communicate with each other mid-advance, so
// there is nothing to synchronize beyond the join.
type workerPool struct {
	workers int
}

// newWorkerPool returns a pool sized to runtime.NumCPU(), following the
// teacher's own default.
func newWorkerPool() *workerPool {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return &workerPool{workers: n}
}

// advanceAll runs groups[i].Advance(t1, dt) for every i, fanned out across
// the pool, and returns the first error encountered, if any. All groups
// are always given the chance to run; errors are collected, not used to
// cancel in-flight work, since a cell group never blocks on another.
func (p *workerPool) advanceAll(groups []*cellgroup.CellGroup, t1, dt float64) error {
	if len(groups) == 0 {
		return nil
	}
	workers := p.workers
	if workers > len(groups) {
		workers = len(groups)
	}

	jobs := make(chan int)
	errs := make([]error, len(groups))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = groups[i].Advance(t1, dt)
			}
		}()
	}
	for i := range groups {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
