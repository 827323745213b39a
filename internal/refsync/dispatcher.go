package refsync

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DispatcherConfig holds configuration for the patch dispatcher.
type DispatcherConfig struct {
	// WorkerCount determines how many plans execute concurrently.
	WorkerCount int

	// QueueSize is the buffer size of the in-memory plan queue. A full
	// queue drops submitted plans (logged, never blocking the request path).
	QueueSize int

	// PatchTimeout bounds the execution of a single plan so a hung store
	// call cannot pin a worker forever. Zero means DefaultPatchTimeout.
	PatchTimeout time.Duration
}

// DefaultPatchTimeout bounds a single plan's execution when the config
// leaves PatchTimeout unset.
const DefaultPatchTimeout = 10 * time.Second

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		WorkerCount:  2,
		QueueSize:    100,
		PatchTimeout: DefaultPatchTimeout,
	}
}

// Dispatcher runs synchronizer plans on a small worker pool, decoupling
// secondary patches from the request path. Submission never blocks and a
// plan's outcome is never reported back to the submitter.
type Dispatcher struct {
	applier    Applier
	planChan   chan Plan
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     DispatcherConfig
	logger     *slog.Logger
}

// NewDispatcher creates a Dispatcher. Call Start before submitting plans.
func NewDispatcher(applier Applier, config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultDispatcherConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultDispatcherConfig().QueueSize
	}
	if config.PatchTimeout <= 0 {
		config.PatchTimeout = DefaultPatchTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		applier:    applier,
		planChan:   make(chan Plan, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "refsync_dispatcher"),
	}
}

// Submit queues a plan for background execution. Empty plans are skipped.
// When the queue is full the plan is dropped with an error log: secondary
// patches are best-effort and must never block or fail the request that
// produced them.
func (d *Dispatcher) Submit(plan Plan) {
	if plan.Empty() {
		return
	}

	select {
	case d.planChan <- plan:
	default:
		d.logger.Error("patch queue full, dropping plan",
			"trigger", plan.Trigger,
			"patch_count", len(plan.Patches))
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	for i := 0; i < d.config.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop shuts the dispatcher down, draining plans already queued and waiting
// for in-flight ones to finish.
func (d *Dispatcher) Stop() {
	close(d.planChan)
	d.wg.Wait()
	d.cancelFunc()
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	d.logger.Debug("starting patch worker", "worker_id", id)

	for plan := range d.planChan {
		d.execute(plan, id)
	}

	d.logger.Debug("patch worker stopped", "worker_id", id)
}

func (d *Dispatcher) execute(plan Plan, workerID int) {
	ctx, cancel := context.WithTimeout(d.ctx, d.config.PatchTimeout)
	defer cancel()

	d.logger.Debug("executing patch plan",
		"trigger", plan.Trigger,
		"patch_count", len(plan.Patches),
		"worker_id", workerID)

	d.applier.Apply(ctx, plan)
}
