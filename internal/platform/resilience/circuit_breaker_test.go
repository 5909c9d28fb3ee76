package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC))
	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	}, clock)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	clock.Advance(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open request to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open request, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteIgnoresClientErrors(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	errClient := errors.New("not found")

	err := b.Execute(func() error { return errClient }, func(err error) bool { return errors.Is(err, errClient) })
	if !errors.Is(err, errClient) {
		t.Fatalf("expected client error passthrough, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("ignored error must not open the breaker, got %s", state)
	}

	_ = b.Execute(func() error { return errors.New("upstream 503") }, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after counted failure, got %s", state)
	}
}

func TestCircuitBreaker_DisabledIsNil(t *testing.T) {
	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false}, nil)
	if b != nil {
		t.Fatalf("disabled config should produce nil breaker")
	}
	calls := 0
	if err := b.Execute(func() error { calls++; return nil }, nil); err != nil || calls != 1 {
		t.Fatalf("nil breaker should pass through, err=%v calls=%d", err, calls)
	}
}
