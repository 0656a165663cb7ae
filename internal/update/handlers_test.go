package update

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/PaperChat/internal/eventbus"
	"github.com/Rorical/PaperChat/internal/models"
)

func newTestModel() *models.AppModel {
	input := textinput.New()
	input.Focus()
	return &models.AppModel{Input: input, Help: help.New(), Status: "Ready"}
}

func newTestDeps(bus *eventbus.EventBus) Deps {
	return Deps{
		Bus:      bus,
		Keys:     DefaultKeyMap(),
		NewRunID: func() string { return "run-1" },
	}
}

func typeText(m *models.AppModel, d Deps, s string) {
	HandleUpdate(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}, d)
}

func pressEnter(m *models.AppModel, d Deps) tea.Cmd {
	return HandleUpdate(m, tea.KeyMsg{Type: tea.KeyEnter}, d)
}

func drainSubmits(bus *eventbus.EventBus) []eventbus.SubmitEvent {
	var out []eventbus.SubmitEvent
	for {
		select {
		case ev := <-bus.UIToCore():
			out = append(out, ev.(eventbus.SubmitEvent))
		default:
			return out
		}
	}
}

func TestSubmitStartsRun(t *testing.T) {
	bus := eventbus.NewEventBus()
	defer bus.Close()
	m, d := newTestModel(), newTestDeps(bus)

	typeText(m, d, "hello")
	if cmd := pressEnter(m, d); cmd == nil {
		t.Error("expected a frame tick after submit")
	}

	if m.Widget.Status != models.Running {
		t.Fatalf("status = %s, want running", m.Widget.Status)
	}
	if m.Input.Focused() {
		t.Error("input should be disabled while running")
	}
	if m.Input.Value() != "hello" {
		t.Errorf("draft = %q, should stay visible until reset", m.Input.Value())
	}
	if !m.Ticking {
		t.Error("frame ticker should be running")
	}

	submits := drainSubmits(bus)
	if len(submits) != 1 {
		t.Fatalf("expected one submit, got %d", len(submits))
	}
	if submits[0] != (eventbus.SubmitEvent{RunID: "run-1", Message: "hello", Cycle: 0}) {
		t.Errorf("unexpected submit %+v", submits[0])
	}
}

func TestSubmitBlankDraftIsNoop(t *testing.T) {
	bus := eventbus.NewEventBus()
	defer bus.Close()

	for _, draft := range []string{"", "   "} {
		m, d := newTestModel(), newTestDeps(bus)
		typeText(m, d, draft)
		if cmd := pressEnter(m, d); cmd != nil {
			t.Errorf("draft %q: expected no command", draft)
		}
		if m.Widget.Status != models.Idle || m.Widget.Cycle != 0 {
			t.Errorf("draft %q: widget changed to %+v", draft, m.Widget)
		}
		if !m.Input.Focused() {
			t.Errorf("draft %q: input lost focus", draft)
		}
	}
	if len(drainSubmits(bus)) != 0 {
		t.Error("blank drafts must not reach the core")
	}
}

func TestInputIgnoredWhileRunning(t *testing.T) {
	bus := eventbus.NewEventBus()
	defer bus.Close()
	m, d := newTestModel(), newTestDeps(bus)

	typeText(m, d, "a")
	pressEnter(m, d)
	typeText(m, d, "b")
	pressEnter(m, d)

	if m.Input.Value() != "a" {
		t.Errorf("draft = %q, want a", m.Input.Value())
	}
	if m.Widget.Status != models.Running || m.Widget.Cycle != 0 {
		t.Errorf("unexpected widget %+v", m.Widget)
	}
	if n := len(drainSubmits(bus)); n != 1 {
		t.Errorf("expected one submit, got %d", n)
	}
}

func TestSequenceDoneResetsWidget(t *testing.T) {
	bus := eventbus.NewEventBus()
	defer bus.Close()
	m, d := newTestModel(), newTestDeps(bus)

	typeText(m, d, "hello")
	pressEnter(m, d)

	HandleUpdate(m, CoreEventMsg{Event: eventbus.PhaseStartedEvent{RunID: "run-1", Phase: models.PhaseThrow}}, d)
	if m.Phase != models.PhaseThrow || m.Status != "Throwing" {
		t.Errorf("phase=%s status=%q", m.Phase, m.Status)
	}
	HandleUpdate(m, CoreEventMsg{Event: eventbus.BurstEvent{RunID: "run-1", BurstID: 4}}, d)
	if m.Widget.BurstID != 4 {
		t.Errorf("burst id = %d", m.Widget.BurstID)
	}

	cmd := HandleUpdate(m, CoreEventMsg{Event: eventbus.SequenceDoneEvent{
		Report: models.RunReport{RunID: "run-1", Cycle: 1, BurstID: 4},
	}}, d)
	if cmd == nil {
		t.Error("expected focus/blink command")
	}

	if m.Widget.Status != models.Idle || m.Widget.Cycle != 1 {
		t.Errorf("unexpected widget %+v", m.Widget)
	}
	if m.Input.Value() != "" {
		t.Errorf("draft = %q, want empty", m.Input.Value())
	}
	if !m.Input.Focused() {
		t.Error("input should be focused after reset")
	}
	if m.Phase != models.PhaseIdle || m.RunID != "" {
		t.Errorf("phase=%s run=%q", m.Phase, m.RunID)
	}

	typeText(m, d, "again")
	if m.Input.Value() != "again" {
		t.Errorf("typing after reset gave %q", m.Input.Value())
	}
}

func TestStaleCoreEventsIgnored(t *testing.T) {
	bus := eventbus.NewEventBus()
	defer bus.Close()
	m, d := newTestModel(), newTestDeps(bus)

	typeText(m, d, "hello")
	pressEnter(m, d)

	HandleUpdate(m, CoreEventMsg{Event: eventbus.SequenceDoneEvent{Report: models.RunReport{RunID: "other"}}}, d)
	if m.Widget.Status != models.Running {
		t.Error("done event for another run must not reset the widget")
	}
}

func TestSequenceFailureAbortsWithoutCycle(t *testing.T) {
	bus := eventbus.NewEventBus()
	defer bus.Close()
	m, d := newTestModel(), newTestDeps(bus)

	typeText(m, d, "hello")
	pressEnter(m, d)
	HandleUpdate(m, CoreEventMsg{Event: eventbus.SequenceDoneEvent{
		Report: models.RunReport{RunID: "run-1"},
		Err:    errors.New("fold phase: interrupted"),
	}}, d)

	if m.Widget.Status != models.Idle || m.Widget.Cycle != 0 {
		t.Errorf("unexpected widget %+v", m.Widget)
	}
	if m.Input.Value() != "hello" || !m.Input.Focused() {
		t.Errorf("draft should survive a failed run: %q focused=%v", m.Input.Value(), m.Input.Focused())
	}
}

func TestSubmitSendFailureAborts(t *testing.T) {
	bus := eventbus.NewEventBusWithSize(0)
	defer bus.Close()
	m, d := newTestModel(), newTestDeps(bus)

	typeText(m, d, "hello")
	pressEnter(m, d)

	if m.Widget.Status != models.Idle {
		t.Errorf("status = %s, want idle", m.Widget.Status)
	}
	if !m.Input.Focused() || m.Input.Value() != "hello" {
		t.Error("input should be editable again with the draft intact")
	}
	if m.RunID != "" {
		t.Errorf("run id = %q", m.RunID)
	}
}

func TestQuitKeys(t *testing.T) {
	m, d := newTestModel(), newTestDeps(eventbus.NewEventBus())
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		cmd := HandleUpdate(m, msg, d)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func TestFrameTicksStopWhenSettled(t *testing.T) {
	m, d := newTestModel(), newTestDeps(eventbus.NewEventBus())
	visible := true
	d.BurstVisible = func() bool { return visible }
	m.Ticking = true

	if cmd := HandleFrameMsg(m, d); cmd == nil {
		t.Error("should keep ticking while particles are visible")
	}
	visible = false
	if cmd := HandleFrameMsg(m, d); cmd != nil {
		t.Error("should stop ticking once idle and settled")
	}
	if m.Ticking || m.Frame != 2 {
		t.Errorf("ticking=%v frame=%d", m.Ticking, m.Frame)
	}
}

func TestRunDeadlineUnlocksStuckRun(t *testing.T) {
	bus := eventbus.NewEventBus()
	defer bus.Close()
	m, d := newTestModel(), newTestDeps(bus)
	d.RunDeadline = time.Second

	typeText(m, d, "hello")
	pressEnter(m, d)

	HandleUpdate(m, RunDeadlineMsg{RunID: "other"}, d)
	if m.Widget.Status != models.Running {
		t.Fatal("deadline for another run must be ignored")
	}

	HandleUpdate(m, RunDeadlineMsg{RunID: "run-1"}, d)
	if m.Widget.Status != models.Idle || m.Widget.Cycle != 0 {
		t.Errorf("unexpected widget %+v", m.Widget)
	}
	if !m.Input.Focused() || m.Input.Value() != "hello" {
		t.Errorf("input should be editable with the draft kept: %q", m.Input.Value())
	}
	if m.RunID != "" {
		t.Errorf("run id = %q", m.RunID)
	}
}

func TestRunDeadlineAfterDoneIsNoop(t *testing.T) {
	bus := eventbus.NewEventBus()
	defer bus.Close()
	m, d := newTestModel(), newTestDeps(bus)
	d.RunDeadline = time.Second

	typeText(m, d, "hello")
	pressEnter(m, d)
	HandleUpdate(m, CoreEventMsg{Event: eventbus.SequenceDoneEvent{Report: models.RunReport{RunID: "run-1", Cycle: 1}}}, d)

	if cmd := HandleUpdate(m, RunDeadlineMsg{RunID: "run-1"}, d); cmd != nil {
		t.Error("late deadline should do nothing")
	}
	if m.Widget.Cycle != 1 || m.Status != "Ready" {
		t.Errorf("late deadline changed the widget: %+v status=%q", m.Widget, m.Status)
	}
}
