package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type cell struct {
	text    string // styled content, empty for blank
	width   int    // cells taken by text
	covered bool   // part of a span that starts further left
}

// Canvas is a fixed grid of terminal cells. Glyphs are styled one cell at a
// time; spans hold already rendered text such as the input view.
type Canvas struct {
	width  int
	height int
	rows   [][]cell
}

func NewCanvas(width, height int) *Canvas {
	width, height = max(0, width), max(0, height)
	rows := make([][]cell, height)
	for y := range rows {
		rows[y] = make([]cell, width)
	}
	return &Canvas{width: width, height: height, rows: rows}
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// Set draws a single-cell glyph. Cells under a span are left alone.
func (c *Canvas) Set(x, y int, r rune, style lipgloss.Style) {
	if !c.inside(x, y) {
		return
	}
	target := &c.rows[y][x]
	if target.covered || target.width > 1 {
		return
	}
	*target = cell{text: style.Render(string(r)), width: 1}
}

// Fill draws r across [x, x+n) on row y.
func (c *Canvas) Fill(x, y, n int, r rune, style lipgloss.Style) {
	for i := range n {
		c.Set(x+i, y, r, style)
	}
}

// Span places pre-rendered text at (x, y), truncated to the canvas edge.
// It returns the number of cells used.
func (c *Canvas) Span(x, y int, s string) int {
	if y < 0 || y >= c.height || x >= c.width || s == "" {
		return 0
	}
	if x < 0 {
		s = ansi.TruncateLeft(s, -x, "")
		x = 0
	}
	if ansi.StringWidth(s) > c.width-x {
		s = ansi.Truncate(s, c.width-x, "")
	}
	w := ansi.StringWidth(s)
	if w == 0 {
		return 0
	}

	row := c.rows[y]
	row[x] = cell{text: s, width: w}
	for i := x + 1; i < x+w; i++ {
		row[i] = cell{covered: true}
	}
	return w
}

// String renders the grid, one line per row, blanks as spaces.
func (c *Canvas) String() string {
	var b strings.Builder
	for y, row := range c.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < len(row); {
			cl := row[x]
			switch {
			case cl.width > 0:
				b.WriteString(cl.text)
				x += cl.width
			default:
				b.WriteByte(' ')
				x++
			}
		}
	}
	return b.String()
}
