// Package session holds the run-scoped state of one harness run: the
// ordered list of results and the hooks that observe each one as it is
// recorded.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vertti/bananacheck/pkg/check"
)

// Session accumulates the results of a single run in execution order.
// It is not safe for concurrent use; checks run one at a time.
type Session struct {
	id        string
	startedAt time.Time
	results   []check.Result
	observe   func(check.Result)
	now       func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithObserver registers a callback invoked once per recorded result,
// immediately after it is appended.
func WithObserver(fn func(check.Result)) Option {
	return func(s *Session) { s.observe = fn }
}

// WithClock overrides the time source used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates an empty session with a fresh run identifier.
func New(opts ...Option) *Session {
	s := &Session{
		id:  uuid.NewString(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s
}

// ID returns the run identifier.
func (s *Session) ID() string { return s.id }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Now returns the current time from the session clock.
func (s *Session) Now() time.Time { return s.now() }

// Run executes c through check.Guard and records its result.
func (s *Session) Run(ctx context.Context, c check.Checker) check.Result {
	return s.Record(check.Guard(ctx, c))
}

// Record stamps r and appends it to the session.
func (s *Session) Record(r check.Result) check.Result {
	r = r.Stamp(s.now())
	s.results = append(s.results, r)
	if s.observe != nil {
		s.observe(r)
	}
	return r
}

// Results returns a copy of the recorded results in execution order.
func (s *Session) Results() []check.Result {
	return append([]check.Result(nil), s.results...)
}
