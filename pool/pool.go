// Package pool provides the fixed worker pool that executes all parallel
// operations in this library, along with worker identities, a static range
// partitioner, and the atomic batch cursor that workers use to claim work.
//
// Most users never touch this package directly: the parallel package
// drives the default pool on their behalf. It is exported for code that
// needs static, reproducible divisions of labor (Partition) or its own
// isolated pool.
package pool

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/exascience/batchpar/internal"
)

// A Worker is one participant in a pool. Workers are numbered 0 through
// Count()-1; a worker's identity is fixed for the lifetime of its pool.
type Worker struct {
	id   int
	pool *Pool
}

// ID returns this worker's identity within its pool, with
// 0 <= ID() < Count().
func (w *Worker) ID() int {
	return w.id
}

// Count returns the number of workers in this worker's pool.
func (w *Worker) Count() int {
	return len(w.pool.workers)
}

// Partition returns the calling worker's share of the half-open interval
// from 0 to n, as determined by Partition(n, w.Count(), w.ID()).
//
// This is the cheap, static, reproducible alternative to claiming batches
// from a Cursor: no synchronization is involved, and the same worker
// always receives the same subrange for the same n.
func (w *Worker) Partition(n int) (low, high int) {
	return Partition(n, len(w.pool.workers), w.id)
}

// Partition divides the half-open interval from 0 to n into count
// contiguous subranges, one per worker identity, and returns the subrange
// for worker id, including low but excluding high.
//
// The subranges partition the interval exactly: they do not overlap, they
// leave no gaps, and their union is the whole interval. Their sizes differ
// by at most 1; when n does not divide evenly, the workers with the
// smallest identities receive the larger shares.
//
// Partition panics if n < 0, if count <= 0, or if id is not a valid
// worker identity for count workers.
func Partition(n, count, id int) (low, high int) {
	if n < 0 {
		panic(fmt.Sprintf("invalid number of elements: %v", n))
	}
	if count <= 0 {
		panic(fmt.Sprintf("invalid number of workers: %v", count))
	}
	if (id < 0) || (id >= count) {
		panic(fmt.Sprintf("invalid worker identity: %v for %v workers", id, count))
	}
	base := n / count
	rem := n % count
	if id < rem {
		low = id * (base + 1)
		high = low + base + 1
	} else {
		low = rem*(base+1) + (id-rem)*base
		high = low + base
	}
	return
}

// A dispatch is one parallel call: every worker runs body exactly once.
// Recovered panics are parked in the slot for the worker's identity so
// that Dispatch can rethrow the left-most one.
type dispatch struct {
	body   func(*Worker)
	wg     *sync.WaitGroup
	panics []interface{}
}

// A Pool is a fixed set of long-lived worker goroutines onto which
// parallel calls are dispatched. Pools never grow or shrink; the worker
// count is fixed at construction time.
type Pool struct {
	mu      sync.Mutex
	workers []*Worker
	tasks   []chan dispatch
}

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// Default returns the process-wide pool shared by the parallel package.
//
// It is constructed once, on first use, with runtime.GOMAXPROCS(0)
// workers, and is never closed.
func Default() *Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = New(runtime.GOMAXPROCS(0))
	})
	return defaultPool
}

// New creates a pool with the given number of worker goroutines. The
// workers start immediately and idle until the first Dispatch.
//
// New panics if workers <= 0.
func New(workers int) *Pool {
	if workers <= 0 {
		panic(fmt.Sprintf("invalid number of workers: %v", workers))
	}
	p := &Pool{
		workers: make([]*Worker, workers),
		tasks:   make([]chan dispatch, workers),
	}
	for i := range p.workers {
		w := &Worker{id: i, pool: p}
		ch := make(chan dispatch)
		p.workers[i] = w
		p.tasks[i] = ch
		go w.run(ch)
	}
	return p
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Dispatch runs body exactly once on every worker of the pool and returns
// only when all workers have finished.
//
// Dispatches on one pool are serialized: concurrent calls are safe, but
// run one at a time. For this reason, body must not call Dispatch on its
// own pool, directly or through the parallel package on the default pool;
// doing so deadlocks.
//
// If one or more invocations of body panic, the corresponding workers
// recover the panics, and Dispatch eventually panics with the recovered
// panic value of the worker with the smallest identity.
func (p *Pool) Dispatch(body func(*Worker)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var wg sync.WaitGroup
	wg.Add(len(p.workers))
	d := dispatch{
		body:   body,
		wg:     &wg,
		panics: make([]interface{}, len(p.workers)),
	}
	for _, ch := range p.tasks {
		ch <- d
	}
	wg.Wait()
	for _, pv := range d.panics {
		if pv != nil {
			panic(pv)
		}
	}
}

// Close terminates the pool's worker goroutines. It must not be called
// while a Dispatch is in flight, and the pool must not be used afterwards.
//
// Closing the default pool is not supported.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.tasks {
		close(ch)
	}
}

func (w *Worker) run(tasks chan dispatch) {
	for d := range tasks {
		w.execute(d)
	}
}

func (w *Worker) execute(d dispatch) {
	defer func() {
		d.panics[w.id] = internal.WrapPanic(recover())
		d.wg.Done()
	}()
	d.body(w)
}
