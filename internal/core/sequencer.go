package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Rorical/PaperChat/internal/anim"
	"github.com/Rorical/PaperChat/internal/models"
	"github.com/Rorical/PaperChat/internal/stage"
)

// Target is the render surface the sequencer drives.
type Target interface {
	// Animate runs a on ch and returns when it has finished.
	Animate(ctx context.Context, ch stage.Channel, a anim.Animation) error
	// Burst replaces the particle batch and returns its id.
	Burst() int
	// Remount resets every channel to its resting values.
	Remount(cycle int)
}

// Observer is told about phase starts and bursts while a run is in progress.
type Observer interface {
	PhaseStarted(runID string, phase models.Phase, at time.Time)
	BurstFired(runID string, burstID int)
}

// Sequencer plays a Plan on a Target, one phase at a time.
type Sequencer struct {
	target   Target
	plan     Plan
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

func NewSequencer(target Target, plan Plan, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sequencer{
		target: target,
		plan:   plan,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Sequencer) SetObserver(o Observer) {
	s.observer = o
}

func (s *Sequencer) Plan() Plan {
	return s.plan
}

// Run plays every phase in order and then remounts the target with cycle+1.
// All steps of a phase start together; the next phase starts only after the
// slowest of them has finished. If ctx is cancelled the in-flight phase is
// abandoned, no remount happens, and the context error is returned.
func (s *Sequencer) Run(ctx context.Context, runID string, cycle int) (models.RunReport, error) {
	report := models.RunReport{RunID: runID, Cycle: cycle}
	logger := s.logger.With("run_id", runID)

	for _, phase := range s.plan {
		timing := models.PhaseTiming{Phase: phase.Phase, Started: s.now()}
		s.notifyPhase(runID, phase.Phase, timing.Started)
		logger.Debug("phase started", "phase", phase.Phase.String(), "steps", len(phase.Steps))

		if phase.Burst {
			report.BurstID = s.target.Burst()
			s.notifyBurst(runID, report.BurstID)
		}

		group, groupCtx := errgroup.WithContext(ctx)
		for _, step := range phase.Steps {
			group.Go(func() error {
				if err := s.target.Animate(groupCtx, step.Channel, step.Animation); err != nil {
					return fmt.Errorf("%s channel: %w", step.Channel, err)
				}
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			logger.Warn("sequence abandoned", "phase", phase.Phase.String(), "error", err)
			return report, fmt.Errorf("%s phase: %w", phase.Phase, err)
		}

		timing.Finished = s.now()
		report.Phases = append(report.Phases, timing)
		logger.Debug("phase finished", "phase", phase.Phase.String(), "elapsed", timing.Finished.Sub(timing.Started))
	}

	resetAt := s.now()
	s.notifyPhase(runID, models.PhaseReset, resetAt)
	report.Cycle = cycle + 1
	s.target.Remount(report.Cycle)
	report.Phases = append(report.Phases, models.PhaseTiming{Phase: models.PhaseReset, Started: resetAt, Finished: s.now()})

	logger.Info("sequence complete", "cycle", report.Cycle, "burst_id", report.BurstID, "elapsed", report.Elapsed())
	return report, nil
}

func (s *Sequencer) notifyPhase(runID string, phase models.Phase, at time.Time) {
	if s.observer != nil {
		s.observer.PhaseStarted(runID, phase, at)
	}
}

func (s *Sequencer) notifyBurst(runID string, burstID int) {
	if s.observer != nil {
		s.observer.BurstFired(runID, burstID)
	}
}
