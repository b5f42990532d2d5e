package raster

import "github.com/kestrelgfx/halfplane/pkg/geom"

// near and far are the fixed clip-plane distances the vertex shader's
// asymmetric perspective projection bakes in. They are not exposed as
// ViewParams fields because the reference they are grounded on treats
// them as compile-time constants of the world-to-clip transform, not
// per-frame state.
const (
	nearPlane = 5.0
	farPlane  = 65536.0
)

// Draw transforms, clips, and rasterizes vertices (a flat list of
// triangles, len(vertices) a multiple of 3) into dest using texture for
// per-pixel color. ccw selects the fan-triangulation winding applied
// after clipping. clipLeft/clipRight and cliptop/clipbottom bound the
// visible columns and, per column, the visible row range [cliptop[i],
// clipbottom[i]).
func Draw(view ViewParams, objectToWorld geom.Mat4, vertices []Vertex, ccw bool, clipLeft, clipRight int, clipTop, clipBottom []int16, texture Texture, dest []byte, pitch int) {
	drawAny(view, objectToWorld, vertices, ccw, func(v1, v2, v3 Vertex) {
		drawTriangle(v1, v2, v3, clipLeft, clipRight, clipTop, clipBottom, texture, dest, pitch)
	})
}

// Fill is Draw's flat-color counterpart: every covered, unclipped pixel
// is written solidColor instead of a sampled texel.
func Fill(view ViewParams, objectToWorld geom.Mat4, vertices []Vertex, ccw bool, clipLeft, clipRight int, clipTop, clipBottom []int16, solidColor byte, dest []byte, pitch int) {
	drawAny(view, objectToWorld, vertices, ccw, func(v1, v2, v3 Vertex) {
		fillTriangle(v1, v2, v3, clipLeft, clipRight, clipTop, clipBottom, solidColor, dest, pitch)
	})
}

// drawAny is the per-triangle driver shared by Draw and Fill: vertex
// shader, clip, perspective divide + viewport map, fan-triangulate,
// dispatch. draw is called once per screen triangle in positive winding
// order regardless of the caller's ccw flag.
func drawAny(view ViewParams, objectToWorld geom.Mat4, vertices []Vertex, ccw bool, draw func(v1, v2, v3 Vertex)) {
	for i := 0; i+2 < len(vertices); i += 3 {
		v0 := vertexShader(view, objectToWorld, vertices[i])
		v1 := vertexShader(view, objectToWorld, vertices[i+1])
		v2 := vertexShader(view, objectToWorld, vertices[i+2])

		clipped, n := clipTriangle(v0, v1, v2)
		if n < 3 {
			continue
		}

		for j := 0; j < n; j++ {
			clipped[j] = viewportMap(view, clipped[j])
		}

		if ccw {
			for k := n; k > 1; k-- {
				draw(clipped[n-1], clipped[k-1], clipped[k-2])
			}
		} else {
			for k := 2; k < n; k++ {
				draw(clipped[0], clipped[k-1], clipped[k])
			}
		}
	}
}

// vertexShader applies objectToWorld, then the fixed view transform and
// asymmetric perspective projection. The formulas are load-bearing: the
// rasterizer's fill convention and the clip-space ranges clipTriangle
// tests against both depend on this exact derivation.
func vertexShader(view ViewParams, objectToWorld geom.Mat4, in Vertex) Vertex {
	w := geom.Vec4{X: in.X, Y: in.Y, Z: in.Z, W: in.W}
	wp := objectToWorld.MulVec4(w)

	trX := wp.X - view.Pos.X
	trY := wp.Y - view.Pos.Y
	trZ := wp.Z - view.Pos.Z

	tx := trX*view.Sin - trY*view.Cos
	tz := trX*view.TanCos + trY*view.TanSin

	out := Vertex{
		X: tx * 0.5,
		Y: trZ * 0.5,
		Z: -tz*(farPlane+nearPlane)/(nearPlane-farPlane) + 2*farPlane*nearPlane/(nearPlane-farPlane),
		W: tz,
	}
	out.Varying = in.Varying
	return out
}

// viewportMap performs the perspective divide and maps the result into
// screen space. w is overwritten with 1/w_clip so the rasterizer can use
// it directly as the perspective-correction reciprocal.
func viewportMap(view ViewParams, v Vertex) Vertex {
	w := 1 / v.W
	v.X *= w
	v.Y *= w
	v.Z *= w
	v.W = w

	v.X = view.CenterX + v.X*2*view.CenterX
	v.Y = view.CenterY - v.Y*2*view.InvZToScale
	return v
}
