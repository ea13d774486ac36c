// Package attach drives document attachment against a live application page.
// A scheduler retries attachment on two cadences until the page verifies that
// every document landed.
package attach

import (
	"context"
	"log"
	"sync"
	"time"
)

// State is the scheduler lifecycle state.
type State int

const (
	// StateIdle means the scheduler has not started
	StateIdle State = iota
	// StatePolling means attach passes are running
	StatePolling
	// StateSettled means verification succeeded and the loops stopped
	StateSettled
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateSettled:
		return "settled"
	default:
		return "idle"
	}
}

// Default cadences. The fast loop retries plain attachment; the slow loop
// additionally reveals hidden inputs and clears stale previews, which can
// detach files other widgets already accepted, so it runs less often.
const (
	DefaultFastInterval = 100 * time.Millisecond
	DefaultSlowInterval = 500 * time.Millisecond
)

// Page is the surface the scheduler drives. Implementations talk to a real
// browser tab; tests substitute a fake.
type Page interface {
	// ForceAttach attaches the pending documents to every matching empty field
	ForceAttach(ctx context.Context) error
	// RevealHidden makes hidden file inputs visible and clicks upload widgets
	RevealHidden(ctx context.Context) error
	// ClearStale removes leftover file previews near upload fields
	ClearStale(ctx context.Context) error
	// Verify reports whether every pending document is attached
	Verify(ctx context.Context) (bool, error)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithIntervals overrides both cadences
func WithIntervals(fast, slow time.Duration) Option {
	return func(s *Scheduler) {
		s.fast = fast
		s.slow = slow
	}
}

// Scheduler runs attach passes against a page until verification succeeds or
// it is stopped. Start is idempotent while polling; a settled or stopped
// scheduler can be started again for a fresh page.
type Scheduler struct {
	page Page
	fast time.Duration
	slow time.Duration

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	done    chan struct{}
	settled chan struct{}
}

// NewScheduler builds a scheduler over the page with default cadences.
func NewScheduler(page Page, opts ...Option) *Scheduler {
	s := &Scheduler{
		page:    page,
		fast:    DefaultFastInterval,
		slow:    DefaultSlowInterval,
		settled: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Settled returns a channel closed when verification first succeeds.
func (s *Scheduler) Settled() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// Start begins the attach loops. Calling Start while polling is a no-op, so
// duplicate triggers from page events never stack timers.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.state == StatePolling {
		s.mu.Unlock()
		return
	}
	if s.state == StateSettled {
		s.settled = make(chan struct{})
	}
	s.state = StatePolling

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	settled := s.settled
	s.mu.Unlock()

	go s.run(runCtx, done, settled)
}

// Stop halts the loops without marking the page settled.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}, settled chan struct{}) {
	defer close(done)

	// First pass clears stale state and attaches immediately so the common
	// case settles before the first tick.
	s.forcedPass(ctx)
	if s.verify(ctx, settled) {
		return
	}

	fastTick := time.NewTicker(s.fast)
	defer fastTick.Stop()
	slowTick := time.NewTicker(s.slow)
	defer slowTick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.setStopped()
			return
		case <-fastTick.C:
			if err := s.page.ForceAttach(ctx); err != nil {
				log.Printf("[ATTACH] attach pass failed: %v", err)
			}
			if s.verify(ctx, settled) {
				return
			}
		case <-slowTick.C:
			s.forcedPass(ctx)
			if s.verify(ctx, settled) {
				return
			}
		}
	}
}

// forcedPass is the heavyweight pass: clear stale previews, reveal hidden
// inputs, then attach.
func (s *Scheduler) forcedPass(ctx context.Context) {
	if err := s.page.ClearStale(ctx); err != nil {
		log.Printf("[ATTACH] clearing stale previews failed: %v", err)
	}
	if err := s.page.RevealHidden(ctx); err != nil {
		log.Printf("[ATTACH] revealing hidden inputs failed: %v", err)
	}
	if err := s.page.ForceAttach(ctx); err != nil {
		log.Printf("[ATTACH] attach pass failed: %v", err)
	}
}

// verify checks the page and transitions to settled when everything landed.
func (s *Scheduler) verify(ctx context.Context, settled chan struct{}) bool {
	if ctx.Err() != nil {
		s.setStopped()
		return true
	}

	ok, err := s.page.Verify(ctx)
	if err != nil {
		log.Printf("[ATTACH] verification failed: %v", err)
		return false
	}
	if !ok {
		return false
	}

	s.mu.Lock()
	s.state = StateSettled
	s.mu.Unlock()
	close(settled)
	return true
}

// setStopped returns a cancelled scheduler to idle unless it already settled
func (s *Scheduler) setStopped() {
	s.mu.Lock()
	if s.state == StatePolling {
		s.state = StateIdle
	}
	s.mu.Unlock()
}
