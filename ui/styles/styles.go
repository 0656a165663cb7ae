package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	background = mustHex("#1c1b22")
	paper      = mustHex("#f6f1e7")
	ink        = mustHex("#2d2a32")
	edge       = mustHex("#b9ae9a")
	shadow     = mustHex("#000000")
	particle   = mustHex("#d8cdb8")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// fade blends c towards the background; opacity 1 keeps c, 0 is invisible.
func fade(c colorful.Color, opacity float64) lipgloss.Color {
	switch {
	case opacity >= 1:
		return lipgloss.Color(c.Hex())
	case opacity <= 0:
		return lipgloss.Color(background.Hex())
	}
	return lipgloss.Color(background.BlendLab(c, opacity).Clamped().Hex())
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// PaperStyle is used for the sheet body and its text.
func PaperStyle(opacity, blur float64) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(fade(ink, opacity)).
		Background(fade(paper, opacity))
	if blur >= 0.3 {
		style = style.Faint(true)
	}
	return style
}

// EdgeStyle draws the border and crumpled ball glyphs.
func EdgeStyle(opacity, blur float64) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(fade(edge, opacity)).
		Background(fade(paper, opacity))
	if blur >= 0.3 {
		style = style.Faint(true)
	}
	return style
}

// BallStyle draws the ball on the stage background.
func BallStyle(opacity, blur float64) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(fade(paper, opacity))
	if blur >= 0.3 {
		style = style.Faint(true)
	}
	return style
}

func TailStyle(opacity float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fade(paper, opacity))
}

// ShadowStyle darkens the background by alpha. The CSS alphas are small, so
// they are stretched to stay visible on a dark terminal.
func ShadowStyle(alpha float64) lipgloss.Style {
	shade := background.BlendRgb(shadow, clamp01(alpha*4)).Clamped()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(shade.Hex()))
}

func ParticleStyle(opacity float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fade(particle, opacity))
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1)
}
