package components

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Rorical/PaperChat/ui/styles"
)

// NewTextInput builds the draft field that lives inside the paper.
func NewTextInput(placeholder string, width int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.CharLimit = 280
	input.Width = width
	input.TextStyle = styles.PaperStyle(1, 0)
	input.PlaceholderStyle = styles.PaperStyle(0.55, 0)
	input.Cursor.Style = styles.EdgeStyle(1, 0)
	input.Focus()
	return input
}
