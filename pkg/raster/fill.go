package raster

// fillTriangle rasterizes one positively-wound screen triangle with a
// constant color index. It reuses drawTriangle's bounding-box and
// half-edge setup but skips all gradient, 1/w, and varying math — flat
// fill never needs perspective correction.
func fillTriangle(v1, v2, v3 Vertex, clipLeft, clipRight int, clipTop, clipBottom []int16, solidColor byte, dest []byte, pitch int) {
	e, ok := setupEdges(v1, v2, v3, clipLeft, clipRight, clipTop, clipBottom, dest, pitch)
	if !ok {
		return
	}

	for y := e.minY; y < e.maxY; y += blockSize {
		for x := e.minX; x < e.maxX; x += blockSize {
			x0, x1 := int64(x)<<4, int64(x+blockSize-1)<<4
			y0, y1 := int64(y)<<4, int64(y+blockSize-1)<<4

			a := cornerMask(e.c1, e.dx12, e.dy12, x0, x1, y0, y1)
			if a == 0 {
				continue
			}
			b := cornerMask(e.c2, e.dx23, e.dy23, x0, x1, y0, y1)
			if b == 0 {
				continue
			}
			c := cornerMask(e.c3, e.dx31, e.dy31, x0, x1, y0, y1)
			if c == 0 {
				continue
			}

			clipped := clipCount(&e, x, y)

			if a == 0xF && b == 0xF && c == 0xF && clipped == 0 {
				for iy := 0; iy < blockSize; iy++ {
					row := (y + iy) * pitch
					for ix := x; ix < x+blockSize; ix++ {
						dest[row+ix] = solidColor
					}
				}
				continue
			}

			cy1 := e.c1 + e.dx12*y0 - e.dy12*x0
			cy2 := e.c2 + e.dx23*y0 - e.dy23*x0
			cy3 := e.c3 + e.dx31*y0 - e.dy31*x0
			for iy := 0; iy < blockSize; iy++ {
				cx1, cx2, cx3 := cy1, cy2, cy3
				row := (y + iy) * pitch
				for ix := x; ix < x+blockSize; ix++ {
					visible := ix >= e.clipLeft && ix <= e.clipRight &&
						int(e.clipTop[ix]) <= y+iy && int(e.clipBottom[ix]) > y+iy

					if cx1 > 0 && cx2 > 0 && cx3 > 0 && visible {
						dest[row+ix] = solidColor
					}

					cx1 -= e.fdy12
					cx2 -= e.fdy23
					cx3 -= e.fdy31
				}

				cy1 += e.fdx12
				cy2 += e.fdx23
				cy3 += e.fdx31
			}
		}
	}
}
