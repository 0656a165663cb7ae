package models

import "time"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFold
	PhaseCrumple
	PhaseThrow
	PhaseReset
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFold:
		return "fold"
	case PhaseCrumple:
		return "crumple"
	case PhaseThrow:
		return "throw"
	case PhaseReset:
		return "reset"
	}
	return "unknown"
}

// PhaseTiming records when a phase began and when its barrier released
type PhaseTiming struct {
	Phase    Phase
	Started  time.Time
	Finished time.Time
}

// RunReport summarizes one completed (or abandoned) sequence
type RunReport struct {
	RunID   string
	Cycle   int // cycle the stage was remounted with
	BurstID int
	Phases  []PhaseTiming
}

// Elapsed is the wall time between the first phase start and the last phase finish.
func (r RunReport) Elapsed() time.Duration {
	if len(r.Phases) == 0 {
		return 0
	}
	return r.Phases[len(r.Phases)-1].Finished.Sub(r.Phases[0].Started)
}
