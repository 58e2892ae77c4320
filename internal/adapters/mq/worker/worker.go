// Package worker runs render jobs pulled from a queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/resumedash/internal/adapters/mq/queue"
	"github.com/okian/resumedash/internal/domain/chart"
	"github.com/okian/resumedash/pkg/logger"
	"github.com/okian/resumedash/pkg/metrics"
)

// Default worker configuration constants.
const (
	poolShutdownTimeout = 30 * time.Second
)

// Prerenderer renders one chart and keeps the result. It reports false when
// the chart has no image form.
type Prerenderer interface {
	Prerender(ctx context.Context, id chart.ID) (bool, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// InMemoryWorker processes render jobs.
type InMemoryWorker struct {
	queue    Queue
	renderer Prerenderer
	name     string

	processed *atomic.Int64
	failed    *atomic.Int64

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, r Prerenderer, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		renderer:  r,
		name:      "worker",
		processed: new(atomic.Int64),
		failed:    new(atomic.Int64),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run processes jobs until the queue drains, ctx is canceled or Shutdown is called.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Error(ctx, "prerender failed", logger.String("chart", string(j.Chart)), logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker and waits for the current job.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, j queue.Job) error {
	stored, err := w.renderer.Prerender(ctx, j.Chart)
	switch {
	case err != nil:
		w.failed.Add(1)
		metrics.RecordPrerenderJob("error")
		metrics.RecordErrorByType("prerender_error", "low")
		return fmt.Errorf("prerender %s: %w", j.Chart, err)
	case !stored:
		metrics.RecordPrerenderJob("skipped")
	default:
		metrics.RecordPrerenderJob("ok")
	}
	w.processed.Add(1)
	w.logger.Debug(ctx, "chart prerendered",
		logger.String("chart", string(j.Chart)),
		logger.Bool("stored", stored),
		logger.Duration("wait", time.Since(j.Enqueued)),
	)
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	processed atomic.Int64
	failed    atomic.Int64

	done     chan struct{}
	stopOnce sync.Once

	logger logger.Logger
}

// NewPool creates a worker pool. workerCount < 1 uses one worker per CPU.
func NewPool(workerCount int, q Queue, r Prerenderer) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		done:    make(chan struct{}),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		w := NewInMemoryWorker(q, r, WithName("worker-"+strconv.Itoa(i)))
		w.processed = &p.processed
		w.failed = &p.failed
		p.workers[i] = w
	}
	return p
}

// Start launches every worker. Done is closed once all of them have exited.
func (p *Pool) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for _, w := range p.workers {
		wg.Add(1)
		go func(w *InMemoryWorker) {
			defer wg.Done()
			w.Run(ctx)
		}(w)
	}
	metrics.UpdatePrerenderWorkers(len(p.workers))

	go func() {
		wg.Wait()
		metrics.UpdatePrerenderWorkers(0)
		p.logger.Info(ctx, "worker pool finished",
			logger.Int("processed", int(p.processed.Load())),
			logger.Int("failed", int(p.failed.Load())),
		)
		close(p.done)
	}()
}

// Done is closed when every worker has exited.
func (p *Pool) Done() <-chan struct{} {
	return p.done
}

// Processed returns the number of jobs handled without error.
func (p *Pool) Processed() int {
	return int(p.processed.Load())
}

// Failed returns the number of jobs whose render failed.
func (p *Pool) Failed() int {
	return int(p.failed.Load())
}

// Shutdown closes the queue, stops all workers and waits for them.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() {
		if closer, ok := p.queue.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				p.logger.Error(ctx, "error closing queue", logger.Error(err))
			}
		}
	})

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
