package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Rorical/PaperChat/internal/eventbus"
	"github.com/Rorical/PaperChat/internal/models"
)

// SequenceService runs the sequencer in the background, fed by submit
// events from the UI, and reports progress back over the event bus.
type SequenceService struct {
	sequencer *Sequencer
	state     *RunState
	eventBus  *eventbus.EventBus
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewSequenceService(seq *Sequencer, eb *eventbus.EventBus, logger *slog.Logger) *SequenceService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	service := &SequenceService{
		sequencer: seq,
		state:     NewRunState(),
		eventBus:  eb,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
	seq.SetObserver(service)
	return service
}

// Start runs the event loop in a goroutine
func (ss *SequenceService) Start() {
	ss.wg.Add(1)
	go func() {
		defer ss.wg.Done()
		ss.eventLoop()
	}()
}

// Stop abandons any in-flight sequence and waits for the loop to exit.
func (ss *SequenceService) Stop() {
	ss.cancel()
	ss.wg.Wait()
}

func (ss *SequenceService) State() *RunState {
	return ss.state
}

func (ss *SequenceService) eventLoop() {
	for {
		select {
		case <-ss.ctx.Done():
			return
		case event, ok := <-ss.eventBus.UIToCore():
			if !ok {
				return
			}
			ss.handleUIEvent(event)
		}
	}
}

func (ss *SequenceService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitEvent:
		ss.runSequence(e)
	}
}

// runSequence claims the sequencer synchronously so a submit that arrives
// mid-run is dropped, then plays the sequence off the event loop.
func (ss *SequenceService) runSequence(e eventbus.SubmitEvent) {
	if !ss.state.Begin() {
		ss.logger.Debug("submit ignored while running", "run_id", e.RunID)
		return
	}

	ss.wg.Add(1)
	go func() {
		defer ss.wg.Done()
		ss.play(e)
	}()
}

func (ss *SequenceService) play(e eventbus.SubmitEvent) {
	ss.logger.Info("sequence started", "run_id", e.RunID, "cycle", e.Cycle, "chars", len(e.Message))
	report, err := ss.sequencer.Run(ss.ctx, e.RunID, e.Cycle)
	ss.state.Finish(report, err)

	if errors.Is(err, context.Canceled) && ss.ctx.Err() != nil {
		// Shutting down; nobody is listening any more.
		return
	}
	ss.push(eventbus.SequenceDoneEvent{Report: report, Err: err})
}

// PhaseStarted implements Observer.
func (ss *SequenceService) PhaseStarted(runID string, phase models.Phase, at time.Time) {
	ss.push(eventbus.PhaseStartedEvent{RunID: runID, Phase: phase, At: at})
}

// BurstFired implements Observer.
func (ss *SequenceService) BurstFired(runID string, burstID int) {
	ss.push(eventbus.BurstEvent{RunID: runID, BurstID: burstID})
}

func (ss *SequenceService) push(event eventbus.CoreEvent) {
	if err := ss.eventBus.SendToUI(event); err != nil {
		ss.logger.Warn("failed to send event to UI", "error", err)
	}
}
