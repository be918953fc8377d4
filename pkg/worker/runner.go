package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/pkg/logger"
)

// Worker is a unit of background work executed on a schedule
type Worker interface {
	// Name returns worker name for logging
	Name() string
	// Run executes one iteration of work
	Run(ctx context.Context) error
}

// Option configures a PeriodicWorker
type Option func(*PeriodicWorker)

// WithoutInitialRun waits a full interval before the first run
func WithoutInitialRun() Option {
	return func(pw *PeriodicWorker) {
		pw.runOnStart = false
	}
}

// PeriodicWorker runs a Worker every interval until its context is cancelled
type PeriodicWorker struct {
	worker     Worker
	interval   time.Duration
	runOnStart bool
	wg         sync.WaitGroup
	name       string
}

// NewPeriodicWorker creates new periodic worker
func NewPeriodicWorker(worker Worker, interval time.Duration, opts ...Option) *PeriodicWorker {
	pw := &PeriodicWorker{
		worker:     worker,
		interval:   interval,
		runOnStart: true,
		name:       worker.Name(),
	}
	for _, opt := range opts {
		opt(pw)
	}
	return pw
}

// Start launches the worker goroutine
func (pw *PeriodicWorker) Start(ctx context.Context) {
	pw.wg.Add(1)
	go pw.run(ctx)
}

// Stop waits for the worker to exit, up to timeout. Returns false on timeout.
func (pw *PeriodicWorker) Stop(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		pw.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("worker stopped", zap.String("worker", pw.name))
		return true
	case <-time.After(timeout):
		logger.Warn("worker stop timeout", zap.String("worker", pw.name))
		return false
	}
}

func (pw *PeriodicWorker) run(ctx context.Context) {
	defer pw.wg.Done()

	logger.Info("worker started",
		zap.String("worker", pw.name),
		zap.Duration("interval", pw.interval),
	)

	if pw.runOnStart {
		pw.execute(ctx)
	}

	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopping", zap.String("worker", pw.name))
			return
		case <-ticker.C:
			pw.execute(ctx)
		}
	}
}

// execute runs one iteration; failures are logged and the schedule continues
func (pw *PeriodicWorker) execute(ctx context.Context) {
	start := time.Now()

	if err := pw.worker.Run(ctx); err != nil {
		logger.Error("worker execution failed",
			zap.String("worker", pw.name),
			zap.Error(err),
		)
		return
	}

	logger.Debug("worker iteration done",
		zap.String("worker", pw.name),
		zap.Duration("took", time.Since(start)),
	)
}

// Group manages multiple workers sharing one cancellation
type Group struct {
	workers []*PeriodicWorker
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
}

// NewGroup creates new worker group
func NewGroup(ctx context.Context) *Group {
	ctx, cancel := context.WithCancel(ctx)
	return &Group{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers a worker; it starts with the group
func (g *Group) Add(worker Worker, interval time.Duration, opts ...Option) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.workers = append(g.workers, NewPeriodicWorker(worker, interval, opts...))
}

// Len returns the number of registered workers
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.workers)
}

// Start starts all workers
func (g *Group) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, w := range g.workers {
		w.Start(g.ctx)
	}

	logger.Info("worker group started", zap.Int("workers", len(g.workers)))
}

// Stop cancels all workers and waits for each up to timeout
func (g *Group) Stop(timeout time.Duration) {
	g.cancel()

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, w := range g.workers {
		w.Stop(timeout)
	}

	logger.Info("worker group stopped", zap.Int("workers", len(g.workers)))
}
