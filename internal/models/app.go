package models

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
)

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Input       textinput.Model // Draft message, owned by the input surface
	Help        help.Model
	Widget      WidgetState
	Phase       Phase  // Phase most recently reported by the sequencer
	RunID       string // Run currently in flight
	LastMessage string // Text that was thrown away last
	Status      string // Status bar text
	Frame       int    // Animation frame counter
	Ticking     bool   // Whether a frame tick is scheduled
	Width       int    // Terminal width
	Height      int    // Terminal height
}
