package components

// RenderStage draws one frame of the paper and its particles.
func RenderStage(width, height int, v PaperView) string {
	canvas := NewCanvas(width, height)
	layout := DefaultLayout(width, height)

	DrawPaper(canvas, layout, v)
	ox, oy := layout.BurstOrigin()
	DrawBurst(canvas, ox, oy, v.Snapshot)

	return canvas.String()
}
