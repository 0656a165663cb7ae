package components

import (
	"math"

	"github.com/charmbracelet/x/ansi"

	"github.com/Rorical/PaperChat/internal/anim"
	"github.com/Rorical/PaperChat/internal/stage"
	"github.com/Rorical/PaperChat/ui/styles"
)

// Radius thresholds, in the same units as anim.Radius.
const (
	roundedRadius  = 14
	crinkledRadius = 40
	ballRadius     = 200
)

// Offsets are designed in pixels; this many make one terminal row.
const pixelsPerRow = 6

// Layout places the resting paper on the stage.
type Layout struct {
	CenterX int
	CenterY int
	Width   int // resting box width, borders included
	Height  int // resting box height, borders included
}

// DefaultLayout centres a speech-bubble sized sheet in a stage.
func DefaultLayout(stageWidth, stageHeight int) Layout {
	return Layout{
		CenterX: stageWidth / 2,
		CenterY: stageHeight/2 + 1,
		Width:   min(40, max(12, stageWidth-4)),
		Height:  5,
	}
}

// BurstOrigin is where the ball sits when it is thrown.
func (l Layout) BurstOrigin() (int, int) {
	return l.CenterX, l.CenterY + rows(-6)
}

// PaperView is everything needed to draw one frame of the sheet.
type PaperView struct {
	Snapshot  stage.Snapshot
	Editable  bool
	InputView string // live input, drawn while editable
	Draft     string // frozen text, drawn while the sheet is still flat
}

func rows(pixels float64) int {
	return int(math.Round(pixels / pixelsPerRow))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DrawPaper draws the shadow, the sheet or ball, and the tail.
func DrawPaper(c *Canvas, l Layout, v PaperView) {
	shape := v.Snapshot.Props(stage.Shape)
	blur := v.Snapshot.Props(stage.Blur).Get(anim.Blur)

	drawShadow(c, l, shape, v.Snapshot.Props(stage.Shadow))

	if shape.Get(anim.Opacity) <= 0.02 {
		return
	}
	if shape.Get(anim.Radius) >= ballRadius {
		drawBall(c, l, shape, blur)
		return
	}
	drawSheet(c, l, shape, blur, v)
}

type border struct {
	tl, tr, bl, br rune
	h, v           rune
	vr             rune // right side
}

func borderFor(radius float64) border {
	switch {
	case radius >= crinkledRadius:
		return border{'(', ')', '(', ')', '~', '(', ')'}
	case radius >= roundedRadius:
		return border{'╭', '╮', '╰', '╯', '─', '│', '│'}
	default:
		return border{'┌', '┐', '└', '┘', '─', '│', '│'}
	}
}

func sheetSize(l Layout, shape anim.Props) (int, int) {
	sx := shape.Get(anim.Scale) * shape.Get(anim.ScaleX) * math.Cos(radians(shape.Get(anim.RotateY)))
	sy := shape.Get(anim.Scale) * shape.Get(anim.ScaleY) * math.Cos(radians(shape.Get(anim.RotateX)))
	w := max(2, int(math.Round(float64(l.Width)*sx)))
	h := max(2, int(math.Round(float64(l.Height)*sy)))
	return w, h
}

func drawSheet(c *Canvas, l Layout, shape anim.Props, blur float64, v PaperView) {
	w, h := sheetSize(l, shape)
	top := l.CenterY - h/2 + rows(shape.Get(anim.OffsetY))
	left := l.CenterX - w/2
	mid := h / 2

	// Terminal cells are about twice as tall as wide.
	lean := math.Tan(radians(shape.Get(anim.RotateZ)+shape.Get(anim.Skew))) * 2
	shear := func(row int) int {
		return int(math.Round(lean * float64(mid-row)))
	}

	opacity := shape.Get(anim.Opacity)
	body := styles.PaperStyle(opacity, blur)
	edge := styles.EdgeStyle(opacity, blur)
	b := borderFor(shape.Get(anim.Radius))

	for row := range h {
		x := left + shear(row)
		y := top + row
		switch row {
		case 0:
			c.Set(x, y, b.tl, edge)
			c.Fill(x+1, y, w-2, b.h, edge)
			c.Set(x+w-1, y, b.tr, edge)
		case h - 1:
			c.Set(x, y, b.bl, edge)
			c.Fill(x+1, y, w-2, b.h, edge)
			c.Set(x+w-1, y, b.br, edge)
		default:
			c.Set(x, y, b.v, edge)
			c.Fill(x+1, y, w-2, ' ', body)
			c.Set(x+w-1, y, b.vr, edge)
		}
	}

	if h >= 3 && w > 4 {
		textX := left + shear(mid) + 2
		switch {
		case v.Editable && v.InputView != "":
			c.Span(textX, top+mid, ansi.Truncate(v.InputView, w-4, ""))
		case v.Draft != "" && shape.Get(anim.Radius) < crinkledRadius:
			c.Span(textX, top+mid, body.Render(ansi.Truncate(v.Draft, w-4, "…")))
		}
	}

	drawTail(c, left+shear(h-1)+3, top+h, v.Snapshot.Props(stage.Tail))
}

func drawTail(c *Canvas, x, y int, tail anim.Props) {
	opacity := tail.Get(anim.Opacity)
	if opacity <= 0.05 {
		return
	}
	glyph := '╱'
	if tail.Get(anim.Scale) < 0.8 {
		glyph = '/'
	}
	c.Set(x, y, glyph, styles.TailStyle(opacity))
}

// Ball sprites from largest to smallest, with the cell that shows the crease.
var balls = []struct {
	minScale float64
	rows     []string
	creaseX  int
	creaseY  int
}{
	{0.35, []string{"▄██▄", "▀██▀"}, 1, 0},
	{0.18, []string{"▐█▌"}, 1, 0},
	{0.08, []string{"●"}, -1, 0},
	{0, []string{"•"}, -1, 0},
}

var creases = []rune{'─', '╲', '│', '╱'}

// crease picks a fold line for the current spin.
func crease(deg float64) rune {
	bucket := int(math.Floor((deg+22.5)/45)) % len(creases)
	if bucket < 0 {
		bucket += len(creases)
	}
	return creases[bucket]
}

func drawBall(c *Canvas, l Layout, shape anim.Props, blur float64) {
	scale := shape.Get(anim.Scale)
	sprite := balls[len(balls)-1]
	for _, b := range balls {
		if scale >= b.minScale {
			sprite = b
			break
		}
	}

	opacity := shape.Get(anim.Opacity)
	style := styles.BallStyle(opacity, blur)
	width := len([]rune(sprite.rows[0]))
	left := l.CenterX - width/2
	top := l.CenterY + rows(shape.Get(anim.OffsetY)) - len(sprite.rows)/2

	for dy, line := range sprite.rows {
		for dx, r := range []rune(line) {
			c.Set(left+dx, top+dy, r, style)
		}
	}
	if sprite.creaseX >= 0 {
		x, y := left+sprite.creaseX, top+sprite.creaseY
		if c.inside(x, y) {
			c.rows[y][x] = cell{}
			c.Set(x, y, crease(shape.Get(anim.RotateZ)), styles.EdgeStyle(opacity, blur))
		}
	}

	if blur >= 1 {
		smudge := styles.BallStyle(opacity*0.5, 0)
		c.Fill(left, top+len(sprite.rows), width, '░', smudge)
	}
}

func drawShadow(c *Canvas, l Layout, shape, shadow anim.Props) {
	alpha := shadow.Get(anim.ShadowAlpha)
	if alpha <= 0.01 {
		return
	}

	var w int
	if shape.Get(anim.Radius) >= ballRadius {
		w = max(1, int(math.Round(float64(l.Width)*shape.Get(anim.Scale)*0.25)))
	} else {
		w, _ = sheetSize(l, shape)
	}
	w += int(shadow.Get(anim.ShadowBlur) / 10)

	y := l.CenterY - l.Height/2 + l.Height + 1 + rows(shadow.Get(anim.ShadowY)-anim.RestingShadowY)
	c.Fill(l.CenterX-w/2, y, w, '▀', styles.ShadowStyle(alpha))
}
