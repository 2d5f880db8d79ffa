// Package scheduler drives the physics tick from a periodic timer and hands
// redraw requests to the main loop without busy waiting.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// ErrStopped is returned by Wait once the scheduler has been stopped.
var ErrStopped = errors.New("scheduler stopped")

// Handler runs on the timer goroutine every divider-th firing.
// Returning true raises the redraw flag.
type Handler func() bool

// Config configures a Scheduler.
type Config struct {
	RateHz  int // Timer firings per second
	Divider int // Handler runs on every Divider-th firing

	// Ticks replaces the internal ticker when set; each receive is one
	// firing. Used by tests and headless runs to drive time manually.
	Ticks <-chan time.Time

	Handler Handler
	Logger  *log.Logger
}

// Scheduler owns the tick goroutine. The tick goroutine is the only caller
// of the handler and the only setter of the redraw flag; Wait is the only
// clearer.
type Scheduler struct {
	interval time.Duration
	divider  atomic.Int32
	handler  Handler
	ticks    <-chan time.Time
	logger   *log.Logger

	redraw atomic.Bool
	wake   chan struct{}

	firings  atomic.Uint64
	advances atomic.Uint64

	running  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a stopped scheduler.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Handler == nil {
		return nil, errors.New("scheduler: nil handler")
	}
	if cfg.Ticks == nil && cfg.RateHz <= 0 {
		return nil, fmt.Errorf("scheduler: rate must be positive, got %d", cfg.RateHz)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	s := &Scheduler{
		handler:  cfg.Handler,
		ticks:    cfg.Ticks,
		logger:   cfg.Logger,
		wake:     make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
	if cfg.RateHz > 0 {
		s.interval = time.Second / time.Duration(cfg.RateHz)
	}
	s.SetDivider(cfg.Divider)
	return s, nil
}

// SetDivider changes how many firings make one physics tick. Values below
// 1 are treated as 1. Safe to call while running.
func (s *Scheduler) SetDivider(n int) {
	s.divider.Store(int32(max(n, 1)))
}

// Divider returns the current divider.
func (s *Scheduler) Divider() int {
	return int(s.divider.Load())
}

// Firings returns the number of timer firings seen so far.
func (s *Scheduler) Firings() uint64 {
	return s.firings.Load()
}

// Advances returns the number of handler invocations so far.
func (s *Scheduler) Advances() uint64 {
	return s.advances.Load()
}

// Start launches the tick goroutine. Calling it twice is a no-op.
func (s *Scheduler) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}

	ticks := s.ticks
	var ticker *time.Ticker
	if ticks == nil {
		ticker = time.NewTicker(s.interval)
		ticks = ticker.C
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if ticker != nil {
			defer ticker.Stop()
		}
		s.loop(ticks)
	}()
	s.logger.Debug("scheduler started", "interval", s.interval, "divider", s.Divider())
}

// Stop halts the tick goroutine and releases any Wait. It blocks until the
// handler is no longer running.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.running.Load() {
			s.wg.Wait()
		}
		s.logger.Debug("scheduler stopped", "firings", s.Firings(), "advances", s.Advances())
	})
}

func (s *Scheduler) loop(ticks <-chan time.Time) {
	count := 0
	for {
		select {
		case <-s.stopChan:
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			s.firings.Add(1)
			count++
			if count < s.Divider() {
				continue
			}
			count = 0
			s.advances.Add(1)
			if s.handler() {
				s.RaiseRedraw()
			}
		}
	}
}

// RaiseRedraw sets the redraw flag and wakes a pending Wait.
func (s *Scheduler) RaiseRedraw() {
	s.redraw.Store(true)
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending reports whether a redraw is requested and not yet consumed.
func (s *Scheduler) Pending() bool {
	return s.redraw.Load()
}

// Wait blocks until the redraw flag is raised, then clears it. It returns
// early with the context's error or ErrStopped.
func (s *Scheduler) Wait(ctx context.Context) error {
	for {
		if s.redraw.CompareAndSwap(true, false) {
			return nil
		}
		select {
		case <-s.wake:
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopChan:
			return ErrStopped
		}
	}
}
