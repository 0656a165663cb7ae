package components

import (
	"math"

	"github.com/Rorical/PaperChat/internal/stage"
	"github.com/Rorical/PaperChat/ui/styles"
)

var streaks = []rune{'─', '╲', '│', '╱'}

// streak picks a glyph whose slant follows the particle's rotation.
func streak(deg float64) rune {
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}
	return streaks[int(math.Floor((deg+22.5)/45))%len(streaks)]
}

// DrawBurst draws the live particles of the snapshot's burst around (x, y).
func DrawBurst(c *Canvas, x, y int, snap stage.Snapshot) {
	if !snap.BurstVisible() {
		return
	}
	for _, p := range snap.Burst.Particles {
		st, ok := p.At(snap.BurstAge)
		if !ok || st.Opacity <= 0.05 {
			continue
		}
		glyph := streak(st.Rotation)
		if st.Scale < 0.25 {
			glyph = '·'
		}
		px := x + int(math.Round(st.X))
		py := y + int(math.Round(st.Y))
		c.Set(px, py, glyph, styles.ParticleStyle(st.Opacity))
	}
}
