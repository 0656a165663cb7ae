package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/PaperChat/internal/models"
)

func HandleUpdate(appModel *models.AppModel, msg tea.Msg, d Deps) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(appModel, msg, d)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case FrameMsg:
		return HandleFrameMsg(appModel, d)
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg, d)
	case RunDeadlineMsg:
		return HandleRunDeadline(appModel, msg, d)
	}

	// Cursor blink and other input housekeeping.
	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(msg)
	return cmd
}
