package loop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Loop is a single-threaded task loop. Tasks and microtasks may be queued
// from any goroutine, but they only run on the goroutine that calls Drain,
// RunPending, Run or Await. All DOM work in an application happens on that
// goroutine.
type Loop struct {
	mu     sync.Mutex
	tasks  []func() error
	micro  []func() error
	wake   chan struct{}
	logger *slog.Logger
	onErr  func(error)
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used to report task errors in Run.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithErrorHandler sets a function that receives every task error raised
// while Run is processing the loop.
func WithErrorHandler(fn func(error)) Option {
	return func(l *Loop) {
		l.onErr = fn
	}
}

// New creates a loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Queue schedules fn as a microtask. Microtasks run in FIFO order after the
// current task, before any task posted with Post.
func (l *Loop) Queue(fn func() error) {
	l.mu.Lock()
	l.micro = append(l.micro, fn)
	l.mu.Unlock()
	l.signal()
}

// Post schedules fn as a task. It is safe to call from any goroutine and is
// how background work hands its results back to the loop.
func (l *Loop) Post(fn func() error) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.signal()
}

// Pending reports whether tasks or microtasks are waiting.
func (l *Loop) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks) > 0 || len(l.micro) > 0
}

// Drain runs microtasks until the queue is empty, including microtasks
// queued while draining. Errors are joined and returned.
func (l *Loop) Drain() error {
	var errs []error
	for {
		l.mu.Lock()
		if len(l.micro) == 0 {
			l.mu.Unlock()
			return errors.Join(errs...)
		}
		fn := l.micro[0]
		l.micro[0] = nil
		l.micro = l.micro[1:]
		l.mu.Unlock()
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
}

// RunPending drains microtasks, then runs posted tasks one at a time, each
// followed by a microtask drain, until nothing is left.
func (l *Loop) RunPending() error {
	var errs []error
	if err := l.Drain(); err != nil {
		errs = append(errs, err)
	}
	for {
		l.mu.Lock()
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			return errors.Join(errs...)
		}
		fn := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		l.mu.Unlock()
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
		if err := l.Drain(); err != nil {
			errs = append(errs, err)
		}
	}
}

// Run processes the loop until ctx is done. Task errors are logged and
// passed to the error handler; Run itself only returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.RunPending(); err != nil {
			l.report(err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Await processes the loop until p settles or ctx is done, and returns the
// promise result. Task errors raised meanwhile are joined into the error.
func (l *Loop) Await(ctx context.Context, p *Promise) (any, error) {
	var errs []error
	for {
		if err := l.RunPending(); err != nil {
			errs = append(errs, err)
		}
		if p.Settled() {
			v, err := p.Result()
			if err != nil {
				errs = append(errs, err)
			}
			return v, errors.Join(errs...)
		}
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			return nil, errors.Join(errs...)
		case <-l.wake:
		}
	}
}

func (l *Loop) report(err error) {
	l.logger.Error("loop task failed", "error", err)
	if l.onErr != nil {
		l.onErr(err)
	}
}
