package transport

import (
	"errors"
	"sync"
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
)

// CircuitState is the state of a CircuitBreaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker open")

// CircuitBreaker wraps the retry loop so repeated exhausted-retry failures
// stop hammering the remote API entirely for a cooldown window.
type CircuitBreaker struct {
	maxFailures     int
	timeout         time.Duration
	state           CircuitState
	failureCount    int
	lastFailureTime time.Time
	mu              sync.RWMutex
	clock           shared.Clock
}

func NewCircuitBreaker(maxFailures int, timeout time.Duration, clock shared.Clock) *CircuitBreaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CircuitBreaker{maxFailures: maxFailures, timeout: timeout, state: CircuitClosed, clock: clock}
}

// Call executes fn under circuit-breaker protection. The lock is released
// while fn runs so long retry loops don't block unrelated callers.
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == CircuitOpen {
		if cb.clock.Now().Sub(cb.lastFailureTime) >= cb.timeout {
			cb.state = CircuitHalfOpen
		} else {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.onFailure()
		return err
	}
	cb.onSuccess()
	return nil
}

func (cb *CircuitBreaker) onFailure() {
	cb.failureCount++
	cb.lastFailureTime = cb.clock.Now()
	if cb.state == CircuitHalfOpen {
		cb.state = CircuitOpen
		return
	}
	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) onSuccess() {
	cb.failureCount = 0
	if cb.state == CircuitHalfOpen {
		cb.state = CircuitClosed
	}
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) FailureCount() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failureCount
}

func (cb *CircuitBreaker) SetState(state CircuitState, failures int, lastFailure time.Time) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = state
	cb.failureCount = failures
	cb.lastFailureTime = lastFailure
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = CircuitClosed
	cb.failureCount = 0
}
