// Package scheduler drives the single-threaded cooperative loop: pop the
// earliest-ready ship from the queue, ask the dispatcher for one action,
// hand non-NOOP actions to the executor, and re-enqueue at the ship's
// freshly recomputed readiness.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/executor"
	"github.com/ionfleet/fleetctl/internal/metrics"
	"github.com/ionfleet/fleetctl/internal/queue"
)

// minSleep and maxSleep bound the scheduler's wait-for-head sleep so the
// loop stays responsive to context cancellation.
const (
	minSleep = 50 * time.Millisecond
	maxSleep = 500 * time.Millisecond
)

// Dispatcher is the subset of dispatcher.Dispatcher the scheduler depends
// on, kept as an interface so tests can substitute a scripted stand-in.
type Dispatcher interface {
	Decide(shipSymbol string) ship.Decision
	ShipReadiness(shipSymbol string) time.Time
}

// Scheduler owns the ready queue and drives dispatcher+executor against it
// until its context is cancelled or the queue empties permanently.
type Scheduler struct {
	queue      *queue.ReadyQueue
	dispatcher Dispatcher
	executor   *executor.Executor
	clock      shared.Clock
	logger     *slog.Logger
}

func New(q *queue.ReadyQueue, d Dispatcher, ex *executor.Executor, clock shared.Clock, logger *slog.Logger) *Scheduler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{queue: q, dispatcher: d, executor: ex, clock: clock, logger: logger}
}

// Seed pushes every ship symbol onto the queue at "ready now", the initial
// enqueue a fresh daemon startup performs once the warehouse is hydrated.
func (s *Scheduler) Seed(shipSymbols []string) {
	now := shared.ISOString(s.clock.Now())
	for _, symbol := range shipSymbols {
		s.queue.Push(symbol, now)
	}
}

// Run drains the queue forever, honoring readiness times, until ctx is
// cancelled. It returns nil on graceful cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		priority, ok := s.queue.PeekNextPriority()
		if !ok {
			return nil
		}

		target, err := shared.ParseISO(priority)
		if err != nil {
			s.logger.Error("scheduler: unparseable priority, dropping head", "priority", priority)
			s.queue.ExtractMin()
			continue
		}

		wait := target.Sub(s.clock.Now())
		if wait > 0 {
			sleep := wait
			if sleep < minSleep {
				sleep = minSleep
			}
			if sleep > maxSleep {
				sleep = maxSleep
			}
			s.clock.Sleep(sleep)
			continue
		}

		s.tick(ctx)
	}
}

// tick pops one ship and runs exactly one dispatch+execute+re-enqueue cycle.
func (s *Scheduler) tick(ctx context.Context) {
	start := s.clock.Now()
	shipSymbol, ok := s.queue.ExtractMin()
	if !ok {
		return
	}

	decision := s.dispatcher.Decide(shipSymbol)
	metrics.RecordDecision(shipSymbol, string(decision.Action))

	if decision.Action != ship.ActionNoop {
		result := s.executor.Execute(ctx, decision)
		s.logger.Info("scheduler: executed action", "ship", shipSymbol, "action", decision.Action, "result", result.String())
	}

	readiness := s.dispatcher.ShipReadiness(shipSymbol)
	s.queue.Push(shipSymbol, shared.ISOString(readiness))

	metrics.RecordTick(s.queue.Size(), s.clock.Now().Sub(start).Seconds())
}
