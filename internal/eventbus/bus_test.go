package eventbus

import (
	"errors"
	"testing"
	"time"
)

func TestSendAndReceive(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	if err := eb.SendToCore(SubmitEvent{RunID: "r1", Message: "hello"}); err != nil {
		t.Fatalf("SendToCore failed: %v", err)
	}
	got := (<-eb.UIToCore()).(SubmitEvent)
	if got.Message != "hello" || got.RunID != "r1" {
		t.Errorf("unexpected event: %+v", got)
	}

	if err := eb.SendToUI(BurstEvent{RunID: "r1", BurstID: 2}); err != nil {
		t.Fatalf("SendToUI failed: %v", err)
	}
	if burst := (<-eb.CoreToUI()).(BurstEvent); burst.BurstID != 2 {
		t.Errorf("unexpected burst: %+v", burst)
	}
}

func TestFullChannelTripsBreaker(t *testing.T) {
	eb := NewEventBusWithSize(1)
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(err EventBusError) { reported = append(reported, err) })

	if err := eb.SendToUI(BurstEvent{}); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := eb.SendToUI(BurstEvent{}); !errors.Is(err, ErrBusFull) {
			t.Fatalf("send %d: expected ErrBusFull, got %v", i, err)
		}
	}

	if eb.GetCircuitBreakerState() != CircuitOpen {
		t.Fatalf("expected open breaker, got %v", eb.GetCircuitBreakerState())
	}
	if err := eb.SendToUI(BurstEvent{}); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if len(reported) != 6 || !errors.Is(reported[0], ErrBusFull) {
		t.Errorf("unexpected reported errors: %v", reported)
	}
}

func TestCircuitBreakerHalfOpens(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Millisecond)
	cb.RecordFailure()
	if !cb.IsOpen() {
		t.Fatal("breaker should be open")
	}
	time.Sleep(3 * time.Millisecond)
	if cb.IsOpen() {
		t.Error("breaker should half-open after timeout")
	}
	if cb.State() != CircuitHalfOpen {
		t.Errorf("state = %v", cb.State())
	}
	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Errorf("state after success = %v", cb.State())
	}
}

func TestSendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	if err := eb.SendToCore(SubmitEvent{}); !errors.Is(err, ErrBusClosed) {
		t.Errorf("expected ErrBusClosed, got %v", err)
	}
	if err := eb.SendToUI(BurstEvent{}); !errors.Is(err, ErrBusClosed) {
		t.Errorf("expected ErrBusClosed, got %v", err)
	}
}
