package core

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Rorical/PaperChat/internal/anim"
	"github.com/Rorical/PaperChat/internal/eventbus"
	"github.com/Rorical/PaperChat/internal/stage"
)

func waitForDone(t *testing.T, eb *eventbus.EventBus) ([]eventbus.CoreEvent, eventbus.SequenceDoneEvent) {
	t.Helper()
	var events []eventbus.CoreEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-eb.CoreToUI():
			events = append(events, ev)
			if done, ok := ev.(eventbus.SequenceDoneEvent); ok {
				return events, done
			}
		case <-timeout:
			t.Fatalf("timed out waiting for sequence, got %d events", len(events))
		}
	}
}

func TestServiceRunsSubmittedSequence(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()

	st := stage.New(stage.Options{TimeScale: 0.01, Frame: time.Millisecond, Rand: rand.New(rand.NewPCG(3, 4))})
	service := NewSequenceService(NewSequencer(st, classicPlan(t), nil), eb, nil)
	service.Start()
	defer service.Stop()

	if err := eb.SendToCore(eventbus.SubmitEvent{RunID: "r1", Message: "hello", Cycle: 0}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	events, done := waitForDone(t, eb)
	if done.Err != nil {
		t.Fatalf("sequence failed: %v", done.Err)
	}
	if done.Report.RunID != "r1" || done.Report.Cycle != 1 || done.Report.BurstID != 1 {
		t.Errorf("unexpected report: %+v", done.Report)
	}

	var bursts, phases int
	for _, ev := range events {
		switch ev.(type) {
		case eventbus.BurstEvent:
			bursts++
		case eventbus.PhaseStartedEvent:
			phases++
		}
	}
	if bursts != 1 || phases != 4 {
		t.Errorf("bursts=%d phases=%d", bursts, phases)
	}

	snap := st.Snapshot()
	if snap.Cycle != 1 {
		t.Errorf("stage cycle = %d", snap.Cycle)
	}
	for _, ch := range stage.Channels() {
		if snap.Props(ch) != anim.Resting() {
			t.Errorf("%s not remounted to resting values", ch)
		}
	}
	if service.State().IsBusy() || service.State().Completed() != 1 {
		t.Errorf("unexpected run state: busy=%v completed=%d", service.State().IsBusy(), service.State().Completed())
	}
}

func TestServiceDropsSubmitWhileBusy(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()

	st := stage.New(stage.Options{TimeScale: 0.05, Frame: time.Millisecond})
	service := NewSequenceService(NewSequencer(st, classicPlan(t), nil), eb, nil)
	service.Start()
	defer service.Stop()

	eb.SendToCore(eventbus.SubmitEvent{RunID: "a", Message: "a"})
	time.Sleep(5 * time.Millisecond)
	eb.SendToCore(eventbus.SubmitEvent{RunID: "b", Message: "b"})

	_, done := waitForDone(t, eb)
	if done.Report.RunID != "a" {
		t.Errorf("first completed run = %q, want a", done.Report.RunID)
	}

	select {
	case ev := <-eb.CoreToUI():
		t.Errorf("unexpected event after the only run: %#v", ev)
	case <-time.After(200 * time.Millisecond):
	}
	if service.State().Completed() != 1 {
		t.Errorf("completed = %d, want 1", service.State().Completed())
	}
}

func TestServiceStopAbandonsRun(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()

	st := stage.New(stage.Options{TimeScale: 10, Frame: time.Millisecond})
	service := NewSequenceService(NewSequencer(st, classicPlan(t), nil), eb, nil)
	service.Start()

	eb.SendToCore(eventbus.SubmitEvent{RunID: "slow", Message: "x"})
	time.Sleep(10 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		service.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	if service.State().Abandoned() != 1 {
		t.Errorf("abandoned = %d, want 1", service.State().Abandoned())
	}
}
