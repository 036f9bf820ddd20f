package harvest

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("fetch pool closed")

// task is one page download run by a pool worker.
type task func(ctx context.Context)

// pool runs page downloads on a fixed number of goroutines.
type pool struct {
	tasks   chan task
	wg      sync.WaitGroup
	workers int

	closeMu sync.Mutex
	closed  bool
}

func newPool(workers, queue int) *pool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &pool{tasks: make(chan task, queue), workers: workers}
}

// start launches the workers. They exit when ctx is done or the pool is closed.
func (p *pool) start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					t(ctx)
				}
			}
		}()
	}
}

// submit enqueues t, giving up when ctx is canceled.
func (p *pool) submit(ctx context.Context, t task) error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting tasks and waits for the workers to drain.
func (p *pool) close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.closeMu.Unlock()
	p.wg.Wait()
}
