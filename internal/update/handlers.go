package update

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/Rorical/PaperChat/internal/eventbus"
	"github.com/Rorical/PaperChat/internal/models"
)

const defaultFrameInterval = time.Second / 60

var errRunTimedOut = errors.New("timed out waiting for the animation")

// Deps are the collaborators the handlers reach beyond the model itself.
type Deps struct {
	Bus           *eventbus.EventBus
	Keys          KeyMap
	FrameInterval time.Duration
	BurstVisible  func() bool   // reports whether particles are still on screen
	NewRunID      func() string // defaults to uuid
	RunDeadline   time.Duration // give up on a run after this long, 0 waits forever
	Logger        *slog.Logger
}

func (d Deps) frameInterval() time.Duration {
	if d.FrameInterval <= 0 {
		return defaultFrameInterval
	}
	return d.FrameInterval
}

func (d Deps) runID() string {
	if d.NewRunID != nil {
		return d.NewRunID()
	}
	return uuid.NewString()
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// HandleKeyMsg handles keyboard input. Typing only reaches the input while
// the widget is Idle.
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, d Deps) tea.Cmd {
	switch {
	case key.Matches(keyMsg, d.Keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, d.Keys.Submit):
		return submit(appModel, d)
	}

	if !appModel.Widget.Editable() {
		return nil
	}
	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(keyMsg)
	return cmd
}

func submit(appModel *models.AppModel, d Deps) tea.Cmd {
	draft := appModel.Input.Value()
	if !appModel.Widget.TrySubmit(draft) {
		return nil
	}

	appModel.Input.Blur()
	appModel.RunID = d.runID()
	appModel.LastMessage = draft
	appModel.Status = "Folding"

	err := d.Bus.SendToCore(eventbus.SubmitEvent{
		RunID:   appModel.RunID,
		Message: draft,
		Cycle:   appModel.Widget.Cycle,
	})
	if err != nil {
		d.logger().Warn("submit not delivered", "run_id", appModel.RunID, "error", err)
		appModel.Widget.Abort()
		appModel.RunID = ""
		appModel.Status = "Error sending message: " + err.Error()
		return appModel.Input.Focus()
	}

	d.logger().Debug("submitted", "run_id", appModel.RunID, "cycle", appModel.Widget.Cycle)
	return tea.Batch(startFrames(appModel, d), deadlineCmd(appModel.RunID, d.RunDeadline))
}

// RunDeadlineMsg fires when a run has had longer than its deadline to report
// back.
type RunDeadlineMsg struct {
	RunID string
}

func deadlineCmd(runID string, after time.Duration) tea.Cmd {
	if after <= 0 {
		return nil
	}
	return tea.Tick(after, func(time.Time) tea.Msg {
		return RunDeadlineMsg{RunID: runID}
	})
}

// HandleRunDeadline unlocks the input if the run's done event never arrived.
func HandleRunDeadline(appModel *models.AppModel, msg RunDeadlineMsg, d Deps) tea.Cmd {
	if msg.RunID != appModel.RunID || appModel.Widget.Status != models.Running {
		return nil
	}
	d.logger().Warn("run deadline passed without a done event", "run_id", msg.RunID)
	return finish(appModel, eventbus.SequenceDoneEvent{
		Report: models.RunReport{RunID: msg.RunID},
		Err:    errRunTimedOut,
	})
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg, d Deps) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.PhaseStartedEvent:
		if event.RunID != appModel.RunID {
			return nil
		}
		appModel.Phase = event.Phase
		appModel.Status = phaseStatus(event.Phase)

	case eventbus.BurstEvent:
		if event.RunID != appModel.RunID {
			return nil
		}
		appModel.Widget.BurstID = event.BurstID
		return startFrames(appModel, d)

	case eventbus.SequenceDoneEvent:
		if event.Report.RunID != appModel.RunID {
			return nil
		}
		return finish(appModel, event)
	}

	return nil
}

// finish puts the widget back to a fresh, focused input.
func finish(appModel *models.AppModel, event eventbus.SequenceDoneEvent) tea.Cmd {
	if event.Err != nil {
		appModel.Widget.Abort()
		appModel.Status = "Error: " + event.Err.Error()
	} else {
		appModel.Widget.Reset()
		appModel.Input.Reset()
		appModel.Status = "Ready"
	}
	appModel.Phase = models.PhaseIdle
	appModel.RunID = ""

	return tea.Batch(appModel.Input.Focus(), textinput.Blink)
}

func phaseStatus(phase models.Phase) string {
	switch phase {
	case models.PhaseFold:
		return "Folding"
	case models.PhaseCrumple:
		return "Crumpling"
	case models.PhaseThrow:
		return "Throwing"
	case models.PhaseReset:
		return "Resetting"
	}
	return "Ready"
}

// FrameMsg asks the view to redraw the stage.
type FrameMsg time.Time

func FrameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func startFrames(appModel *models.AppModel, d Deps) tea.Cmd {
	if appModel.Ticking {
		return nil
	}
	appModel.Ticking = true
	return FrameCmd(d.frameInterval())
}

// HandleFrameMsg keeps ticking while the paper or its particles are moving.
func HandleFrameMsg(appModel *models.AppModel, d Deps) tea.Cmd {
	appModel.Frame++
	if appModel.Widget.Status == models.Running || (d.BurstVisible != nil && d.BurstVisible()) {
		return FrameCmd(d.frameInterval())
	}
	appModel.Ticking = false
	return nil
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
	appModel.Help.Width = sizeMsg.Width
}

// StatusLine is the text shown in the status bar.
func StatusLine(appModel models.AppModel) string {
	return fmt.Sprintf("%s · thrown %d", appModel.Status, appModel.Widget.Cycle)
}
