package alert

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrRateLimited is reported for alerts dropped by the rate limit.
var ErrRateLimited = errors.New("alert: rate limit exceeded")

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// Timeout bounds a single delivery (default 5s)
	Timeout time.Duration
	// PerMinute caps deliveries per minute; zero means unlimited
	PerMinute int
	// OnError receives delivery failures. It runs on the delivery
	// goroutine and must not dispatch alerts itself.
	OnError func(a Alert, err error)
}

// Dispatcher delivers alerts in the background so that callers never
// wait for the network.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	limiter  *rate.Limiter
	onError  func(Alert, error)
	mu       sync.Mutex
	idle     *sync.Cond
	inflight int
}

// NewDispatcher creates a Dispatcher sending through n.
func NewDispatcher(n Notifier, cfg DispatcherConfig) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	d := &Dispatcher{
		notifier: n,
		timeout:  cfg.Timeout,
		onError:  cfg.OnError,
	}
	d.idle = sync.NewCond(&d.mu)
	if cfg.PerMinute > 0 {
		d.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.PerMinute)), cfg.PerMinute)
	}
	return d
}

// Dispatch starts delivery of a and returns immediately. Failures go to
// the OnError callback; they are never returned to the caller.
func (d *Dispatcher) Dispatch(a Alert) {
	d.DispatchFunc(a, d.onError)
}

// DispatchFunc is Dispatch with a per-call failure callback in place of
// OnError. A nil onError discards failures.
func (d *Dispatcher) DispatchFunc(a Alert, onError func(Alert, error)) {
	report := func(err error) {
		if onError != nil {
			onError(a, err)
		}
	}

	if d.limiter != nil && !d.limiter.Allow() {
		report(ErrRateLimited)
		return
	}

	d.mu.Lock()
	d.inflight++
	d.mu.Unlock()
	go func() {
		defer d.done()
		defer func() {
			// A panicking notifier must not take the process down
			if r := recover(); r != nil {
				report(errors.New("alert: notifier panicked"))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.notifier.Notify(ctx, a); err != nil {
			report(err)
		}
	}()
}

func (d *Dispatcher) done() {
	d.mu.Lock()
	d.inflight--
	if d.inflight == 0 {
		d.idle.Broadcast()
	}
	d.mu.Unlock()
}

// Wait blocks until no delivery is in flight. It may run concurrently
// with Dispatch; deliveries started while waiting are waited for too.
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	for d.inflight > 0 {
		d.idle.Wait()
	}
	d.mu.Unlock()
}
