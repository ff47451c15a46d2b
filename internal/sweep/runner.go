// Package sweep runs one scheduled evaluation pass over the opted-in user
// population and writes the resulting notifications.
//
// Each user is evaluated and notified independently: a failure or panic for
// one user is logged with the user ID and never stops the sweep. Only a
// failure to load the candidate list aborts a sweep.
//
// Import Path: fittrack.io/notifier/internal/sweep
package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/evaluator"
	"fittrack.io/notifier/internal/notification"
	"fittrack.io/notifier/internal/pkg/logger"
)

var (
	// ErrSweepRunning is returned when a sweep of the same kind is in progress.
	ErrSweepRunning = errors.New("sweep already running")
	// ErrUnknownKind is returned for a kind with no registered evaluator.
	ErrUnknownKind = errors.New("unknown sweep kind")
)

// UserSource loads sweep candidates.
type UserSource interface {
	UsersWithPreference(ctx context.Context, pref domain.Preference) ([]domain.User, error)
}

// FanOut runs fn for each index in [0, n) with bounded concurrency and waits.
// *worker.Pool satisfies it.
type FanOut interface {
	ForEach(ctx context.Context, n int, fn func(ctx context.Context, i int)) error
}

// Result summarizes one sweep.
type Result struct {
	Kind       domain.SweepKind `json:"kind"`
	Candidates int              `json:"candidates"`
	// Notified counts notifications created.
	Notified int `json:"notified"`
	// Duplicates counts writes skipped by the dedupe key.
	Duplicates int `json:"duplicates"`
	// Skipped counts users for whom the evaluator returned no action.
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// Runner executes sweeps. Safe for concurrent use; at most one sweep per
// kind runs at a time in this process.
type Runner struct {
	users        UserSource
	sender       notification.Sender
	evaluators   map[domain.SweepKind]evaluator.Evaluator
	fanOut       FanOut
	userTimeout  time.Duration
	writeTimeout time.Duration

	running map[domain.SweepKind]*atomic.Bool
}

// Option customizes a Runner.
type Option func(*Runner)

// WithFanOut evaluates users concurrently on f instead of sequentially.
func WithFanOut(f FanOut) Option {
	return func(r *Runner) { r.fanOut = f }
}

// WithUserTimeout bounds each user's evaluation.
func WithUserTimeout(d time.Duration) Option {
	return func(r *Runner) { r.userTimeout = d }
}

// WithWriteTimeout bounds each user's notification writes. Writes are not
// subject to the evaluation deadline or to cancellation of the sweep.
func WithWriteTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.writeTimeout = d
		}
	}
}

const defaultWriteTimeout = 10 * time.Second

// NewRunner creates a runner for the given evaluators.
func NewRunner(users UserSource, sender notification.Sender, evaluators map[domain.SweepKind]evaluator.Evaluator, opts ...Option) *Runner {
	r := &Runner{
		users:        users,
		sender:       sender,
		evaluators:   evaluators,
		writeTimeout: defaultWriteTimeout,
		running:      make(map[domain.SweepKind]*atomic.Bool, len(evaluators)),
	}
	for kind := range evaluators {
		r.running[kind] = &atomic.Bool{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Running reports whether a sweep of kind is in progress.
func (r *Runner) Running(kind domain.SweepKind) bool {
	guard, ok := r.running[kind]
	return ok && guard.Load()
}

// Has reports whether kind has a registered evaluator.
func (r *Runner) Has(kind domain.SweepKind) bool {
	_, ok := r.evaluators[kind]
	return ok
}

// Run performs one sweep of kind as of now. It returns ErrSweepRunning
// without doing anything when the same kind is already running. Per-user
// failures are counted in Result.Failed and do not produce an error.
func (r *Runner) Run(ctx context.Context, kind domain.SweepKind, now time.Time) (Result, error) {
	eval, ok := r.evaluators[kind]
	if !ok {
		return Result{Kind: kind}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	guard := r.running[kind]
	if !guard.CompareAndSwap(false, true) {
		return Result{Kind: kind}, ErrSweepRunning
	}
	defer guard.Store(false)

	start := time.Now()
	res := Result{Kind: kind}

	users, err := r.users.UsersWithPreference(ctx, kind.Preference())
	if err != nil {
		logger.Error("sweep aborted: cannot load candidates",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return res, fmt.Errorf("load %s candidates: %w", kind, err)
	}
	res.Candidates = len(users)

	logger.Info("sweep started",
		zap.String("kind", string(kind)),
		zap.Int("candidates", len(users)),
		zap.Time("as_of", now),
	)

	var mu sync.Mutex
	record := func(o outcome) {
		mu.Lock()
		defer mu.Unlock()
		res.Notified += o.notified
		res.Duplicates += o.duplicates
		if o.failed {
			res.Failed++
		} else if o.notified+o.duplicates == 0 {
			res.Skipped++
		}
	}

	process := func(ctx context.Context, i int) {
		record(r.processUser(ctx, kind, eval, users[i], now))
	}

	if r.fanOut != nil {
		if err := r.fanOut.ForEach(ctx, len(users), process); err != nil {
			logger.Warn("sweep fan-out stopped early",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
		}
	} else {
		for i := range users {
			if ctx.Err() != nil {
				break
			}
			process(ctx, i)
		}
	}

	res.Duration = time.Since(start)
	logger.Info("sweep completed",
		zap.String("kind", string(kind)),
		zap.Int("candidates", res.Candidates),
		zap.Int("notified", res.Notified),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

type outcome struct {
	notified   int
	duplicates int
	failed     bool
}

// processUser evaluates and notifies one user. It never panics and never
// returns an error: failures are logged and reported in the outcome.
func (r *Runner) processUser(ctx context.Context, kind domain.SweepKind, eval evaluator.Evaluator, user domain.User, now time.Time) (out outcome) {
	defer func() {
		if p := recover(); p != nil {
			out.failed = true
			logger.Error("sweep user panicked",
				zap.String("kind", string(kind)),
				zap.String("user_id", user.ID),
				zap.Any("panic", p),
				zap.Stack("stack"),
			)
		}
	}()

	evalCtx := ctx
	if r.userTimeout > 0 {
		var cancel context.CancelFunc
		evalCtx, cancel = context.WithTimeout(ctx, r.userTimeout)
		defer cancel()
	}

	payloads, evalErr := eval.Evaluate(evalCtx, user, now)
	if evalErr != nil {
		out.failed = true
		logger.Error("sweep user evaluation failed",
			zap.String("kind", string(kind)),
			zap.String("user_id", user.ID),
			zap.Error(evalErr),
		)
	}

	if len(payloads) == 0 {
		return out
	}

	// Payloads returned next to an error, including an expired evaluation
	// deadline, describe state that already changed (a goal marked
	// completed). They are written on their own budget.
	writeCtx, cancelWrite := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
	defer cancelWrite()
	for _, p := range payloads {
		created, err := r.sender.Send(writeCtx, p)
		if err != nil {
			out.failed = true
			logger.Error("sweep user notification failed",
				zap.String("kind", string(kind)),
				zap.String("user_id", user.ID),
				zap.String("related_id", p.RelatedID),
				zap.Error(err),
			)
			continue
		}
		if created {
			out.notified++
		} else {
			out.duplicates++
		}
	}
	return out
}
