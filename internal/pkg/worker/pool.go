// Package worker provides goroutine pool management.
//
// Naked goroutines are not used outside main: background work goes through a
// Pool so concurrency stays bounded and panics are recovered and logged.
//
// Import Path: fittrack.io/notifier/internal/pkg/worker
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"fittrack.io/notifier/internal/pkg/logger"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a context-aware task function.
type Task func(ctx context.Context)

// Pool wraps ants.Pool with context-aware submission.
type Pool struct {
	pool *ants.Pool
	name string
}

// Pools is the worker pool collection.
type Pools struct {
	// General runs detached background work such as manually triggered sweeps.
	General *Pool
	// Sweep bounds the per-user fan-out inside a sweep.
	Sweep *Pool

	serviceCtx    context.Context
	serviceCancel context.CancelFunc
}

// PoolConfig contains worker pool configuration.
type PoolConfig struct {
	GeneralPoolSize int
	SweepPoolSize   int
}

// DefaultPoolConfig returns default configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		GeneralPoolSize: 16,
		SweepPoolSize:   4,
	}
}

// NewPools creates the worker pool collection.
func NewPools(ctx context.Context, cfg PoolConfig) (*Pools, error) {
	serviceCtx, serviceCancel := context.WithCancel(ctx)

	general, err := NewPool("general", cfg.GeneralPoolSize, 10*time.Second)
	if err != nil {
		serviceCancel()
		return nil, err
	}
	sweep, err := NewPool("sweep", cfg.SweepPoolSize, 30*time.Second)
	if err != nil {
		general.pool.Release()
		serviceCancel()
		return nil, err
	}

	return &Pools{
		General:       general,
		Sweep:         sweep,
		serviceCtx:    serviceCtx,
		serviceCancel: serviceCancel,
	}, nil
}

// NewPool creates a single named pool. Idle workers are purged after expiry.
func NewPool(name string, size int, expiry time.Duration) (*Pool, error) {
	p, err := ants.NewPool(size,
		ants.WithPanicHandler(func(v interface{}) {
			logger.Error("worker panic recovered",
				zap.String("pool", name),
				zap.Any("panic", v),
				zap.Stack("stack"),
			)
		}),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(expiry),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s pool: %w", name, err)
	}
	return &Pool{pool: p, name: name}, nil
}

// Submit submits a context-aware task.
// If ctx is already cancelled, returns ctx.Err() without submitting.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return p.submit(func() {
		// ctx may have been cancelled while the task was queued.
		select {
		case <-ctx.Done():
			logger.Debug("task skipped: context cancelled",
				zap.String("pool", p.name),
				zap.Error(ctx.Err()),
			)
			return
		default:
		}
		task(ctx)
	})
}

// ForEach runs fn for every index in [0, n) on the pool and waits for all of
// them. Concurrency is bounded by the pool capacity. A panicking fn is
// recovered by the pool and does not affect the other indexes. Indexes not
// yet started when ctx is cancelled are skipped. The returned error reports
// a submission failure; fn outcomes are the caller's concern.
func (p *Pool) ForEach(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	var wg sync.WaitGroup
	var submitErr error

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		wg.Add(1)
		idx := i
		err := p.submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			fn(ctx, idx)
		})
		if err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit item %d/%d to %s pool: %w", idx+1, n, p.name, err)
			break
		}
	}

	wg.Wait()
	return submitErr
}

func (p *Pool) submit(f func()) error {
	err := p.pool.Submit(f)
	if errors.Is(err, ants.ErrPoolClosed) {
		return ErrPoolClosed
	}
	return err
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int { return p.pool.Cap() }

// SubmitDetached submits a background task bound to the service lifecycle
// instead of a request context. It survives request cancellation but stops
// on graceful shutdown.
func (p *Pools) SubmitDetached(task Task) error {
	return p.General.submit(func() {
		select {
		case <-p.serviceCtx.Done():
			logger.Debug("detached task skipped: service shutting down")
			return
		default:
		}
		task(p.serviceCtx)
	})
}

// Shutdown cancels detached tasks and waits for running tasks (max 30s per pool).
func (p *Pools) Shutdown() {
	p.serviceCancel()

	const shutdownTimeout = 30 * time.Second
	if err := p.General.pool.ReleaseTimeout(shutdownTimeout); err != nil {
		logger.Warn("general pool shutdown timeout", zap.Error(err))
	}
	if err := p.Sweep.pool.ReleaseTimeout(shutdownTimeout); err != nil {
		logger.Warn("sweep pool shutdown timeout", zap.Error(err))
	}
}

// Metrics returns pool metrics for the readiness endpoint.
func (p *Pools) Metrics() map[string]interface{} {
	return map[string]interface{}{
		"general": poolMetrics(p.General),
		"sweep":   poolMetrics(p.Sweep),
	}
}

func poolMetrics(p *Pool) map[string]int {
	return map[string]int{
		"running": p.pool.Running(),
		"free":    p.pool.Free(),
		"cap":     p.pool.Cap(),
	}
}
