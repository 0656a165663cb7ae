package models

import "strings"

// AnimState gates editing and submission
type AnimState int

const (
	Idle AnimState = iota
	Running
)

func (s AnimState) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// WidgetState is the submission gate plus the identifiers that force the paper
// to remount. It is only mutated from the UI update loop.
type WidgetState struct {
	Status  AnimState
	Cycle   int
	BurstID int
}

// TrySubmit moves Idle -> Running for a non-blank draft. Anything else is a no-op.
func (w *WidgetState) TrySubmit(draft string) bool {
	if w.Status == Running || strings.TrimSpace(draft) == "" {
		return false
	}
	w.Status = Running
	return true
}

// Reset ends a completed cycle.
func (w *WidgetState) Reset() {
	if w.Status != Running {
		return
	}
	w.Status = Idle
	w.Cycle++
}

// Abort returns to Idle when a submission never reached the sequencer.
func (w *WidgetState) Abort() {
	w.Status = Idle
}

func (w WidgetState) Editable() bool {
	return w.Status == Idle
}
