package core

import (
	"sync"

	"github.com/Rorical/PaperChat/internal/models"
)

// RunState tracks whether a sequence is in flight and what the last one did.
type RunState struct {
	mu         sync.RWMutex
	busy       bool
	completed  int
	abandoned  int
	lastReport models.RunReport
}

func NewRunState() *RunState {
	return &RunState{}
}

// Begin claims the sequencer. It returns false if a run is already active.
func (rs *RunState) Begin() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.busy {
		return false
	}
	rs.busy = true
	return true
}

// Finish releases the sequencer and records the outcome.
func (rs *RunState) Finish(report models.RunReport, err error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.busy = false
	rs.lastReport = report
	if err != nil {
		rs.abandoned++
		return
	}
	rs.completed++
}

func (rs *RunState) IsBusy() bool {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.busy
}

func (rs *RunState) Completed() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.completed
}

func (rs *RunState) Abandoned() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.abandoned
}

func (rs *RunState) LastReport() models.RunReport {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.lastReport
}
