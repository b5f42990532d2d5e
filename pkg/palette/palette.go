// Package palette supplies the "surrounding renderer" collaborator the
// rasterizer core assumes exists: an 8-bit indexed framebuffer, a
// 256-entry color palette, and the half-block terminal presentation that
// turns indices into something visible.
package palette

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// colorSample is an unquantized pixel pulled from a source image while
// building a palette.
type colorSample struct{ r, g, b uint8 }

// Palette is a fixed 256-entry color table. The rasterizer core never
// reserves any index specially; BuildFromImage fills entries from index 0
// upward, so index 0 holds the first quantized color.
type Palette [256]color.RGBA

// Nearest returns the palette index whose RGB is closest to c by squared
// Euclidean distance in linear-ish RGB space. Alpha is ignored: the core
// only ever writes opaque indices.
func (p Palette) Nearest(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)

	best := 0
	bestDist := math.MaxInt64
	for i, pc := range p {
		dr := r8 - int(pc.R)
		dg := g8 - int(pc.G)
		db := b8 - int(pc.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return uint8(best)
}

// BuildFromImage builds a size-entry palette (size <= 256) by greedily
// bucketing the image's pixels along the RGB channel with the widest
// range and taking each bucket's average color. This is a cheap
// median-cut-free quantizer adequate for demo art; it is not a
// color-science deliverable.
func BuildFromImage(img image.Image, size int) Palette {
	if size <= 0 {
		size = 1
	}
	if size > 256 {
		size = 256
	}

	bounds := img.Bounds()
	samples := make([]colorSample, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			samples = append(samples, colorSample{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
		}
	}

	var pal Palette
	if len(samples) == 0 {
		return pal
	}

	buckets := [][]colorSample{samples}
	for len(buckets) < size {
		// Split the largest bucket along its widest channel.
		widest := 0
		for i, b := range buckets {
			if len(b) > len(buckets[widest]) {
				widest = i
			}
		}
		bucket := buckets[widest]
		if len(bucket) < 2 {
			break
		}

		minR, maxR := bucket[0].r, bucket[0].r
		minG, maxG := bucket[0].g, bucket[0].g
		minB, maxB := bucket[0].b, bucket[0].b
		for _, s := range bucket {
			minR, maxR = minInt8(minR, s.r), maxInt8(maxR, s.r)
			minG, maxG = minInt8(minG, s.g), maxInt8(maxG, s.g)
			minB, maxB = minInt8(minB, s.b), maxInt8(maxB, s.b)
		}
		rangeR, rangeG, rangeB := maxR-minR, maxG-minG, maxB-minB

		var less func(i, j int) bool
		switch {
		case rangeR >= rangeG && rangeR >= rangeB:
			less = func(i, j int) bool { return bucket[i].r < bucket[j].r }
		case rangeG >= rangeB:
			less = func(i, j int) bool { return bucket[i].g < bucket[j].g }
		default:
			less = func(i, j int) bool { return bucket[i].b < bucket[j].b }
		}
		sort.Slice(bucket, less)

		mid := len(bucket) / 2
		left := append([]colorSample{}, bucket[:mid]...)
		right := append([]colorSample{}, bucket[mid:]...)
		buckets[widest] = left
		buckets = append(buckets, right)
	}

	for i, bucket := range buckets {
		if i >= size {
			break
		}
		var sr, sg, sb int
		for _, s := range bucket {
			sr += int(s.r)
			sg += int(s.g)
			sb += int(s.b)
		}
		n := len(bucket)
		if n == 0 {
			continue
		}
		pal[i] = color.RGBA{
			R: uint8(sr / n),
			G: uint8(sg / n),
			B: uint8(sb / n),
			A: 255,
		}
	}
	return pal
}

func minInt8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

func maxInt8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
