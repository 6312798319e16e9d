// Package job runs background work outside any HTTP request. Each job
// carries the tenant it was enqueued under, so capability bindings in a
// worker match the request that produced the job.
package job

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
	"github.com/orderly-app/orderly/tenancy"
)

// DefaultWorkers is the worker count used when a Runner is configured
// with none.
const DefaultWorkers = 4

// Job is a unit of background work.
type Job struct {
	// Name labels the job in logs and metrics.
	Name string

	// Tenant is the tenant context the job runs under. Empty means the
	// job runs with default capability variants only.
	Tenant orderly.TenantID

	// Fn does the work. The context it receives has capability bindings
	// installed for Tenant.
	Fn func(ctx context.Context) error
}

// Runner executes jobs on a fixed pool of workers.
type Runner struct {
	binder *tenancy.Binder
	log    *zap.Logger

	queue chan Job
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool

	jobsTotal   *prometheus.CounterVec
	jobsErrored *prometheus.CounterVec
}

// RunnerConfig assembles a Runner.
type RunnerConfig struct {
	Binder  *tenancy.Binder
	Log     *zap.Logger
	Workers int
	// QueueSize bounds how many jobs may wait for a worker. Enqueue fails
	// once the queue is full.
	QueueSize int
}

// NewRunner starts a Runner and its workers. Metrics are registered on
// reg when it is non-nil.
func NewRunner(cfg RunnerConfig, reg prometheus.Registerer) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 128
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := &Runner{
		binder: cfg.Binder,
		log:    log,
		queue:  make(chan Job, cfg.QueueSize),
		jobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "job",
			Subsystem: "runner",
			Name:      "jobs_total",
			Help:      "Number of jobs executed.",
		}, []string{"job", "tenant"}),
		jobsErrored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "job",
			Subsystem: "runner",
			Name:      "jobs_errored_total",
			Help:      "Number of jobs that returned an error.",
		}, []string{"job", "tenant"}),
	}
	if reg != nil {
		reg.MustRegister(r.jobsTotal, r.jobsErrored)
	}

	for i := 0; i < cfg.Workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	return r
}

// Enqueue schedules j for execution. It fails when the runner is closed
// or the queue is full.
func (r *Runner) Enqueue(j Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return &errors.Error{
			Code: errors.EUnavailable,
			Msg:  "job runner is closed",
		}
	}

	select {
	case r.queue <- j:
		return nil
	default:
		return &errors.Error{
			Code: errors.EUnavailable,
			Msg:  "job queue is full",
		}
	}
}

// Close stops accepting jobs and waits for in-flight jobs to finish.
func (r *Runner) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
	return nil
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for j := range r.queue {
		r.run(j)
	}
}

// run executes one job with a fresh tenant context. A job has no request
// signals; its tenant is whatever it was enqueued with.
func (r *Runner) run(j Job) {
	ctx := context.Background()

	res := r.binder.NewResolver(tenancy.Signals{})
	res.Override(j.Tenant)
	ctx = tenancy.WithResolver(ctx, res)
	ctx = r.binder.Bind(ctx, res)

	err := j.Fn(ctx)

	labels := prometheus.Labels{"job": j.Name, "tenant": j.Tenant.Normalize()}
	r.jobsTotal.With(labels).Inc()
	if err != nil {
		r.jobsErrored.With(labels).Inc()
		r.log.Error("Job failed",
			zap.String("job", j.Name),
			zap.String("tenant", j.Tenant.String()),
			zap.Error(err))
		return
	}
	r.log.Debug("Job finished",
		zap.String("job", j.Name),
		zap.String("tenant", j.Tenant.String()))
}
