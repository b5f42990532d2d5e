package palette

import (
	"image"
	"image/png"
	"os"
)

// Framebuffer is an 8-bit indexed pixel buffer, row-major, one byte per
// pixel. It is the minimal concrete stand-in for the `dc_destorg`/
// `dc_pitch` globals the rasterizer core's reference assumes the
// surrounding engine supplies: Row hands out exactly the (dest, pitch)
// pair raster.Draw/raster.Fill expect.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint8
}

// NewFramebuffer allocates a zeroed (index 0) framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint8, width*height),
	}
}

// Row returns the framebuffer's backing slice and pitch — the exact
// (dest []byte, pitch int) pair raster.Draw/raster.Fill take. y is
// unused beyond documenting intent; the whole buffer is row-major with
// a constant pitch, so every row lives in the same slice.
func (fb *Framebuffer) Row(y int) ([]byte, int) {
	return fb.Pixels, fb.Width
}

// Clip builds the "no occlusion" cliptop/clipbottom pair: every column
// is visible across the full row range.
func (fb *Framebuffer) Clip() (cliptop, clipbottom []int16) {
	cliptop = make([]int16, fb.Width)
	clipbottom = make([]int16, fb.Width)
	for i := range clipbottom {
		clipbottom[i] = int16(fb.Height)
	}
	return
}

// Clear fills the framebuffer with a single palette index.
func (fb *Framebuffer) Clear(index uint8) {
	for i := range fb.Pixels {
		fb.Pixels[i] = index
	}
}

// SetPixel sets the index at (x, y). Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, index uint8) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = index
}

// GetPixel returns the index at (x, y), or 0 if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) uint8 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// ToImage resolves every index through pal into a standard image.RGBA.
func (fb *Framebuffer) ToImage(pal Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, pal[fb.Pixels[y*fb.Width+x]])
		}
	}
	return img
}

// SavePNG resolves the framebuffer through pal and writes it to path.
func (fb *Framebuffer) SavePNG(path string, pal Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage(pal))
}
