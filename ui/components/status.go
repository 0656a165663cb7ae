package components

import (
	"github.com/charmbracelet/bubbles/help"

	"github.com/Rorical/PaperChat/ui/styles"
)

func RenderStatus(status string, width int) string {
	return styles.StatusStyle(width).Render(status)
}

func RenderHelp(h help.Model, keys help.KeyMap) string {
	return styles.HelpStyle().Render(h.View(keys))
}
