package uicheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrNoResponse is returned when the awaited response never arrives.
var ErrNoResponse = errors.New("no response")

// WaitState is the state of a ResponseWaiter.
type WaitState int

const (
	Waiting WaitState = iota
	Resolved
	TimedOut
)

func (s WaitState) String() string {
	switch s {
	case Waiting:
		return "WAITING"
	case Resolved:
		return "RESOLVED"
	case TimedOut:
		return "TIMED_OUT"
	default:
		return fmt.Sprintf("WaitState(%d)", int(s))
	}
}

// Ticker abstracts time.Ticker so waits can run under a simulated clock.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker returns a Ticker backed by time.NewTicker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// ResponseWaiter waits for the first page response whose URL contains a
// target substring. It starts listening as soon as it is created, so it
// must be created before the action that triggers the request.
type ResponseWaiter struct {
	target    string
	ticks     int
	interval  time.Duration
	newTicker func(time.Duration) Ticker

	mu     sync.Mutex
	state  WaitState
	resp   Response
	done   chan struct{}
	remove func()
}

// NewResponseWaiter registers a matcher for target on page. The wait gives
// up after ticks ticks of interval. A nil newTicker uses NewRealTicker.
func NewResponseWaiter(page Page, target string, ticks int, interval time.Duration, newTicker func(time.Duration) Ticker) *ResponseWaiter {
	if ticks < 1 {
		ticks = 1
	}
	if newTicker == nil {
		newTicker = NewRealTicker
	}
	w := &ResponseWaiter{
		target:    target,
		ticks:     ticks,
		interval:  interval,
		newTicker: newTicker,
		done:      make(chan struct{}),
	}
	w.remove = page.OnResponse(w.observe)
	return w
}

// observe is called from the page's event goroutine.
func (w *ResponseWaiter) observe(r Response) {
	if !strings.Contains(r.URL(), w.target) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != Waiting {
		return
	}
	w.state = Resolved
	w.resp = r
	close(w.done)
}

// State reports the current state.
func (w *ResponseWaiter) State() WaitState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Close unregisters the matcher. It is safe to call more than once.
func (w *ResponseWaiter) Close() {
	w.mu.Lock()
	remove := w.remove
	w.remove = nil
	w.mu.Unlock()
	if remove != nil {
		remove()
	}
}

// Wait blocks until a matching response arrives, the tick budget runs out
// or ctx is done. The matcher is unregistered before Wait returns.
func (w *ResponseWaiter) Wait(ctx context.Context) (Response, error) {
	defer w.Close()

	ticker := w.newTicker(w.interval)
	defer ticker.Stop()

	remaining := w.ticks
	for {
		select {
		case <-w.done:
			return w.resp, nil
		default:
		}

		select {
		case <-w.done:
			return w.resp, nil
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", w.target, ctx.Err())
		case <-ticker.C():
			remaining--
			if remaining > 0 {
				continue
			}
			w.mu.Lock()
			if w.state == Resolved {
				resp := w.resp
				w.mu.Unlock()
				return resp, nil
			}
			w.state = TimedOut
			w.mu.Unlock()
			return nil, fmt.Errorf("%w after %s", ErrNoResponse, time.Duration(w.ticks)*w.interval)
		}
	}
}
