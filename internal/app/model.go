package app

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/PaperChat/internal/dispatcher"
	"github.com/Rorical/PaperChat/internal/models"
	"github.com/Rorical/PaperChat/internal/stage"
	"github.com/Rorical/PaperChat/internal/update"
	"github.com/Rorical/PaperChat/ui/components"
)

// Used until the first WindowSizeMsg arrives.
const (
	fallbackWidth  = 60
	fallbackHeight = 18
	chromeHeight   = 2 // status bar and help line
)

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	stage      *stage.Stage
	deps       update.Deps
}

func newAppModel(placeholder string, frame, deadline time.Duration, disp *dispatcher.EventDispatcher, st *stage.Stage, logger *slog.Logger) *AppModel {
	layout := components.DefaultLayout(fallbackWidth, fallbackHeight-chromeHeight)
	return &AppModel{
		appModel: models.AppModel{
			Input:  components.NewTextInput(placeholder, layout.Width-5),
			Help:   help.New(),
			Phase:  models.PhaseIdle,
			Status: "Ready",
		},
		dispatcher: disp,
		stage:      st,
		deps: update.Deps{
			Bus:           disp.GetEventBus(),
			Keys:          update.DefaultKeyMap(),
			FrameInterval: frame,
			BurstVisible:  func() bool { return st.Snapshot().BurstVisible() },
			RunDeadline:   deadline,
			Logger:        logger,
		},
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent, m.deps)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdate(&m.appModel, msg, m.deps)
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		w, h := m.size()
		m.appModel.Input.Width = components.DefaultLayout(w, h-chromeHeight).Width - 5
	}
	return m, cmd
}

func (m *AppModel) size() (int, int) {
	w, h := m.appModel.Width, m.appModel.Height
	if w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

func (m *AppModel) View() string {
	width, height := m.size()

	snap := m.stage.Snapshot()
	view := components.PaperView{
		Snapshot:  snap,
		Editable:  m.appModel.Widget.Editable(),
		InputView: m.appModel.Input.View(),
	}
	// Once the stage has remounted for the next cycle the thrown draft is gone,
	// even if the done event has not reached the model yet.
	if snap.Cycle == m.appModel.Widget.Cycle && m.appModel.Phase != models.PhaseReset {
		view.Draft = m.appModel.LastMessage
	}

	var b strings.Builder
	b.WriteString(components.RenderStage(width, max(1, height-chromeHeight), view))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(update.StatusLine(m.appModel), width))
	b.WriteString("\n")
	b.WriteString(components.RenderHelp(m.appModel.Help, m.deps.Keys))

	return b.String()
}
