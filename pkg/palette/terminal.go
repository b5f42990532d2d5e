package palette

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw presents an indexed framebuffer to a terminal Screen using
// half-block cells, resolving each index through pal right before
// building the cell. One terminal row covers two framebuffer rows
// (▀ with fg = top pixel, bg = bottom pixel), same convention as the
// RGBA framebuffer this is adapted from.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle, pal Palette) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			topColor := pal[fb.GetPixel(col, topY)]
			botColor := pal[fb.GetPixel(col, botY)]

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor treats a zero-alpha palette entry (an index BuildFromImage
// never filled) as "no color" rather than opaque black.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
