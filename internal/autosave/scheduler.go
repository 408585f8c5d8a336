// Package autosave persists editing sessions after a quiet period.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// DefaultDelay is the quiet period after the last mutation before saving.
const DefaultDelay = 3 * time.Second

// State is the save state shown to the user.
type State string

const (
	StateIdle    State = "idle"
	StateUnsaved State = "unsaved"
	StateSaving  State = "saving"
)

// Source is the document being edited.
type Source interface {
	Snapshot() (document.Document, uint64)
	Dirty() bool
	MarkSaved(revision uint64) bool
}

// PersistFunc writes the full document. It must be atomic from the caller's
// point of view.
type PersistFunc func(ctx context.Context, doc document.Document) error

// Timer is the cancellation handle of a scheduled save.
type Timer interface {
	Stop() bool
}

// Status reports the scheduler state.
type Status struct {
	State         State
	LastError     error
	LastSavedAt   time.Time
	SavedRevision uint64
}

// Scheduler debounces saves. Each Notify restarts the delay; at most one
// persist runs at a time and a change made during a persist starts a new
// delay instead of racing it.
type Scheduler struct {
	source  Source
	persist PersistFunc
	delay   time.Duration
	timeout time.Duration
	ctx     context.Context
	logger  interfaces.Logger
	now     func() time.Time
	after   func(time.Duration, func()) Timer

	persistMu sync.Mutex

	mu      sync.Mutex
	timer   Timer
	saving  bool
	pending bool
	closed  bool
	status  Status
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDelay overrides DefaultDelay.
func WithDelay(delay time.Duration) Option {
	return func(s *Scheduler) {
		if delay > 0 {
			s.delay = delay
		}
	}
}

// WithTimeout bounds each persist call.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = timeout
	}
}

// WithContext sets the parent context of background saves.
func WithContext(ctx context.Context) Option {
	return func(s *Scheduler) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for LastSavedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(after func(time.Duration, func()) Timer) Option {
	return func(s *Scheduler) {
		if after != nil {
			s.after = after
		}
	}
}

// New constructs a Scheduler for source.
func New(source Source, persist PersistFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		source:  source,
		persist: persist,
		delay:   DefaultDelay,
		ctx:     context.Background(),
		logger:  logging.NoOp(),
		now:     time.Now,
		after: func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		},
		status: Status{State: StateIdle},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Notify records a mutation and restarts the delay.
func (s *Scheduler) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if !s.saving {
		s.status.State = StateUnsaved
	}
	s.resetLocked()
}

// Flush cancels any pending delay and saves now when the source is dirty. It
// waits for an in-flight save to finish first.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
	return s.save(ctx)
}

// Close cancels any pending save. It does not wait for an in-flight save.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending = false
	s.stopLocked()
}

// Status returns the current state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Pending reports whether a delayed save is scheduled.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil || s.pending
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	s.timer = nil
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.saving {
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if err := s.save(s.ctx); err != nil {
		s.logger.Warn("autosave.persist.failed", "error", err)
	}
}

func (s *Scheduler) save(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if !s.source.Dirty() {
		return nil
	}
	doc, revision := s.source.Snapshot()

	s.mu.Lock()
	s.saving = true
	s.status.State = StateSaving
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	err := s.persist(ctx, doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		s.status.State = StateUnsaved
		s.status.LastError = err
	} else {
		s.status.LastError = nil
		s.status.LastSavedAt = s.now()
		s.status.SavedRevision = revision
		s.status.State = StateIdle
		if !s.source.MarkSaved(revision) {
			s.status.State = StateUnsaved
		}
		s.logger.Debug("autosave.persist.succeeded", "revision", revision)
	}
	if s.pending && !s.closed {
		s.pending = false
		s.resetLocked()
	}
	return err
}

func (s *Scheduler) resetLocked() {
	s.stopLocked()
	s.timer = s.after(s.delay, s.fire)
}

func (s *Scheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
