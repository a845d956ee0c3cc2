// Package executor performs the side effects the dispatcher decided on:
// issuing API calls, reconciling responses into the warehouse, persisting
// transactions, and advancing runtime state. Where the dispatcher is pure,
// every method here talks to the network or the store.
package executor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/logging"
	"github.com/ionfleet/fleetctl/internal/metrics"
	"github.com/ionfleet/fleetctl/internal/store"
	"github.com/ionfleet/fleetctl/internal/transport"
	"github.com/ionfleet/fleetctl/internal/warehouse"
)

// Result is the tagged outcome of one executed action, used in place of
// exception-driven refuel/navigate control flow.
type Result int

const (
	ResultOK Result = iota
	ResultInsufficientFuel
	ResultNotSold
	ResultRetryable
	ResultFatal
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultInsufficientFuel:
		return "INSUFFICIENT_FUEL"
	case ResultNotSold:
		return "NOT_SOLD"
	case ResultRetryable:
		return "RETRYABLE"
	case ResultFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// defaultBackoffDuration is scheduled on a ship when the executor hits a
// local invariant failure or exhausts its navigate fallback chain.
const defaultBackoffDuration = 30 * time.Second

type Executor struct {
	client       *transport.Client
	wh           *warehouse.Warehouse
	store        *store.Store
	clock        shared.Clock
	logger       *slog.Logger
	tradeLog     *logging.TradeLog
	minSellPrice int
}

type Option func(*Executor)

func WithLogger(l *slog.Logger) Option { return func(e *Executor) { e.logger = l } }
func WithTradeLog(t *logging.TradeLog) Option {
	return func(e *Executor) { e.tradeLog = t }
}
func WithMinSellPrice(p int) Option { return func(e *Executor) { e.minSellPrice = p } }

func New(client *transport.Client, wh *warehouse.Warehouse, st *store.Store, clock shared.Clock, opts ...Option) *Executor {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	e := &Executor{client: client, wh: wh, store: st, clock: clock, logger: slog.Default(), minSellPrice: 10}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute carries out one dispatcher Decision and returns its outcome.
func (e *Executor) Execute(ctx context.Context, decision ship.Decision) Result {
	switch decision.Action {
	case ship.ActionNoop:
		return ResultOK
	case ship.ActionRefuel:
		return e.executeRefuel(ctx, decision)
	case ship.ActionNavigateToMine:
		return e.executeNavigateToMine(ctx, decision)
	case ship.ActionExtractMinerals:
		return e.executeExtract(ctx, decision)
	case ship.ActionProbeVisitMarket:
		return e.executeProbeVisitMarket(ctx, decision)
	default:
		e.logger.Warn("executor: unknown action", "ship", decision.Ship, "action", decision.Action)
		return ResultOK
	}
}

// classifyError maps a transport error to a Result and records API error
// metrics/logs for logical (APIError) failures.
func (e *Executor) classifyError(shipSymbol string, err error) Result {
	var fatal *transport.FatalError
	if errors.As(err, &fatal) {
		return ResultFatal
	}
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		metrics.RecordAPIError(apiErr.Code)
		if apiErr.Code == transport.InsufficientFuelCode {
			return ResultInsufficientFuel
		}
		e.logger.Warn("executor: logical API error", "ship", shipSymbol, "code", apiErr.Code, "message", apiErr.Message)
		return ResultRetryable
	}
	e.logger.Warn("executor: transport error", "ship", shipSymbol, "error", err)
	return ResultRetryable
}

// backoff schedules shipSymbol's runtime to wake again after defaultBackoffDuration,
// logging the reason.
func (e *Executor) backoff(shipSymbol, reason string) {
	rt, ok := e.wh.Runtime(shipSymbol)
	if !ok {
		return
	}
	rt.NextWakeup = e.clock.Now().Add(defaultBackoffDuration)
	e.logger.Info("executor: backing off", "ship", shipSymbol, "reason", reason)
}
