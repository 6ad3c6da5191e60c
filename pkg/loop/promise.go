package loop

import (
	"context"
	"fmt"
	"sync"
)

// Promise is the result of an asynchronous computation. Callbacks
// registered with Then run as microtasks on the owning loop once the
// promise settles.
type Promise struct {
	loop *Loop

	mu      sync.Mutex
	settled bool
	value   any
	err     error
	then    []func(any, error) error
}

// NewPromise returns a pending promise with its resolve and reject
// functions. Only the first settle call has an effect; both functions are
// safe to call from any goroutine.
func (l *Loop) NewPromise() (p *Promise, resolve func(any), reject func(error)) {
	p = &Promise{loop: l}
	return p, func(v any) { p.settle(v, nil) }, func(err error) { p.settle(nil, err) }
}

// Resolved returns a promise already fulfilled with v.
func (l *Loop) Resolved(v any) *Promise {
	p := &Promise{loop: l, settled: true, value: v}
	return p
}

// Go runs fn on a new goroutine and settles the returned promise on the
// loop with its result. A panic in fn rejects the promise.
func (l *Loop) Go(ctx context.Context, fn func(ctx context.Context) (any, error)) *Promise {
	p, resolve, reject := l.NewPromise()
	go func() {
		v, err := func() (v any, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("loop: async task panicked: %v", r)
				}
			}()
			return fn(ctx)
		}()
		l.Post(func() error {
			if err != nil {
				reject(err)
			} else {
				resolve(v)
			}
			return nil
		})
	}()
	return p
}

func (p *Promise) settle(v any, err error) {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return
	}
	p.settled = true
	p.value, p.err = v, err
	callbacks := p.then
	p.then = nil
	p.mu.Unlock()
	for _, cb := range callbacks {
		p.schedule(cb)
	}
}

func (p *Promise) schedule(cb func(any, error) error) {
	p.loop.Queue(func() error {
		return cb(p.value, p.err)
	})
}

// Then registers cb to run once the promise settles. The error cb returns
// is reported by the loop call that runs it.
func (p *Promise) Then(cb func(value any, err error) error) {
	p.mu.Lock()
	if !p.settled {
		p.then = append(p.then, cb)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	p.schedule(cb)
}

// Settled reports whether the promise has a result.
func (p *Promise) Settled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settled
}

// Result returns the settled value and error. It returns nil, nil while the
// promise is pending.
func (p *Promise) Result() (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.err
}
