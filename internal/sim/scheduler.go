package sim

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler fires engine ticks on a wall-clock cadence. The cadence and
// the 30-day simulated step are independent knobs. Ticks run serially on
// one goroutine, so a slow tick can never overlap the next one and the
// clock advances exactly once per completed tick.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
	log      *slog.Logger

	mu    sync.Mutex
	clock Clock
}

func NewScheduler(engine *Engine, interval time.Duration, clock Clock, log *slog.Logger) *Scheduler {
	return &Scheduler{engine: engine, interval: interval, clock: clock, log: log}
}

// Clock returns the current authoritative simulation clock.
func (s *Scheduler) Clock() Clock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Run blocks until ctx is cancelled. Cancellation is honored between
// ticks only; a tick already in flight runs to completion.
func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick(context.WithoutCancel(ctx))
		}
	}
}

// Tick runs a single engine pass and keeps the advanced clock when the
// pass completed. A fatal tick leaves the clock untouched.
func (s *Scheduler) Tick(ctx context.Context) {
	next, err := s.engine.RunTick(ctx, s.Clock())
	if err != nil {
		s.log.Error("tick aborted", "err", err)
		return
	}
	s.mu.Lock()
	s.clock = next
	s.mu.Unlock()
}
