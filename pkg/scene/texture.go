package scene

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/kestrelgfx/halfplane/pkg/palette"
	"github.com/kestrelgfx/halfplane/pkg/raster"
)

// maxTextureDim caps the working resolution BuildTexture quantizes at.
// The core's fixed-point sampler has no mip chain, so there is no
// benefit to carrying source art larger than this.
const maxTextureDim = 256

// BuildTexture resizes img down to a working resolution (capped at
// maxTextureDim per side, source art below the cap is left alone) with
// a smooth filter, then quantizes every texel through pal into a
// column-major raster.Texture (index = u*height+v, per pkg/raster's
// sampling convention).
func BuildTexture(img image.Image, pal palette.Palette) raster.Texture {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width > maxTextureDim {
		width = maxTextureDim
	}
	if height > maxTextureDim {
		height = maxTextureDim
	}
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)

	data := make([]byte, width*height)
	for u := 0; u < width; u++ {
		for v := 0; v < height; v++ {
			data[u*height+v] = pal.Nearest(scaled.RGBAAt(u, v))
		}
	}

	return raster.RawTexture{W: width, H: height, Data: data}
}
