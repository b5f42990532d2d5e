package raster

import "math"

// drawTriangle rasterizes one positively-wound screen triangle with
// perspective-correct, per-block-affine texture sampling. It shares its
// half-edge bounding-box setup with fillTriangle via setupEdges but keeps
// its own inner loops so the textured hot path never carries the flat
// path's dead weight.
func drawTriangle(v1, v2, v3 Vertex, clipLeft, clipRight int, clipTop, clipBottom []int16, texture Texture, dest []byte, pitch int) {
	e, ok := setupEdges(v1, v2, v3, clipLeft, clipRight, clipTop, clipBottom, dest, pitch)
	if !ok {
		return
	}

	texWidth, texHeight := 0, 0
	var texels []byte
	if texture != nil {
		texWidth, texHeight = texture.Width(), texture.Height()
		texels = texture.Pixels()
	}

	gradWX := gradX(v1.X, v1.Y, v2.X, v2.Y, v3.X, v3.Y, v1.W, v2.W, v3.W)
	gradWY := gradY(v1.X, v1.Y, v2.X, v2.Y, v3.X, v3.Y, v1.W, v2.W, v3.W)
	startW := v1.W + gradWX*(float64(e.minX)-v1.X) + gradWY*(float64(e.minY)-v1.Y)

	var gradVX, gradVY, startV [NumVarying]float64
	for i := range gradVX {
		c0, c1, c2 := v1.Varying[i]*v1.W, v2.Varying[i]*v2.W, v3.Varying[i]*v3.W
		gradVX[i] = gradX(v1.X, v1.Y, v2.X, v2.Y, v3.X, v3.Y, c0, c1, c2)
		gradVY[i] = gradY(v1.X, v1.Y, v2.X, v2.Y, v3.X, v3.Y, c0, c1, c2)
		startV[i] = c0 + gradVX[i]*(float64(e.minX)-v1.X) + gradVY[i]*(float64(e.minY)-v1.Y)
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

			offx0 := float64(x-e.minX) + 0.5
			offy0 := float64(y-e.minY) + 0.5
			offx1 := offx0 + blockSize
			offy1 := offy0 + blockSize
			rcpTL := 1 / (startW + offx0*gradWX + offy0*gradWY)
			rcpTR := 1 / (startW + offx1*gradWX + offy0*gradWY)
			rcpBL := 1 / (startW + offx0*gradWX + offy1*gradWY)
			rcpBR := 1 / (startW + offx1*gradWX + offy1*gradWY)

			var varTL, varTR, varBL, varBR [NumVarying]float64
			for i := range varTL {
				varTL[i] = (startV[i] + offx0*gradVX[i] + offy0*gradVY[i]) * rcpTL
				varTR[i] = (startV[i] + offx1*gradVX[i] + offy0*gradVY[i]) * rcpTR
				varBL[i] = ((startV[i]+offx0*gradVX[i]+offy1*gradVY[i])*rcpBL - varTL[i]) / blockSize
				varBR[i] = ((startV[i]+offx1*gradVX[i]+offy1*gradVY[i])*rcpBR - varTR[i]) / blockSize
			}

			if a == 0xF && b == 0xF && c == 0xF && clipped == 0 {
				for iy := 0; iy < blockSize; iy++ {
					var v, step [NumVarying]float64
					for i := range v {
						v[i] = varTL[i] + varBL[i]*float64(iy)
						step[i] = (varTR[i] + varBR[i]*float64(iy) - v[i]) / blockSize
					}
					row := (y + iy) * pitch
					for ix := x; ix < x+blockSize; ix++ {
						dest[row+ix] = sampleTexture(v[0], v[1], texels, texWidth, texHeight)
						for i := range v {
							v[i] += step[i]
						}
					}
				}
				continue
			}

			cy1 := e.c1 + e.dx12*y0 - e.dy12*x0
			cy2 := e.c2 + e.dx23*y0 - e.dy23*x0
			cy3 := e.c3 + e.dx31*y0 - e.dy31*x0
			for iy := 0; iy < blockSize; iy++ {
				cx1, cx2, cx3 := cy1, cy2, cy3

				var v, step [NumVarying]float64
				for i := range v {
					v[i] = varTL[i] + varBL[i]*float64(iy)
					step[i] = (varTR[i] + varBR[i]*float64(iy) - v[i]) / blockSize
				}

				row := (y + iy) * pitch
				for ix := x; ix < x+blockSize; ix++ {
					visible := ix >= e.clipLeft && ix <= e.clipRight &&
						int(e.clipTop[ix]) <= y+iy && int(e.clipBottom[ix]) > y+iy

					if cx1 > 0 && cx2 > 0 && cx3 > 0 && visible {
						dest[row+ix] = sampleTexture(v[0], v[1], texels, texWidth, texHeight)
					}

					for i := range v {
						v[i] += step[i]
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

// sampleTexture maps perspective-correct (u, v) into the column-major
// texel array using the reference's 0.16 x u16 fixed-point multiply:
// only the fractional part of u/v ever selects a texel, so a texture
// tiles seamlessly across a triangle without an explicit wrap step.
func sampleTexture(u, v float64, texels []byte, width, height int) byte {
	if len(texels) == 0 || width == 0 || height == 0 {
		return 0
	}
	uFrac := uint32(uint64((u - math.Floor(u)) * 4294967296.0))
	vFrac := uint32(uint64((v - math.Floor(v)) * 4294967296.0))
	uPos := ((uFrac >> 16) * uint32(width)) >> 16
	vPos := ((vFrac >> 16) * uint32(height)) >> 16
	offset := int(uPos)*height + int(vPos)
	if offset < 0 || offset >= len(texels) {
		return 0
	}
	return texels[offset]
}
