package raster

import (
	"testing"

	"github.com/kestrelgfx/halfplane/pkg/geom"
)

// TestVertexShaderNearFarPlanes checks the two fixed points of the
// asymmetric perspective projection: a point at the near distance lands
// on the clip-space near plane (z == -w), and a point at the far
// distance lands on the far plane (z == w).
func TestVertexShaderNearFarPlanes(t *testing.T) {
	view := ViewParams{Sin: 0, Cos: 1, TanSin: 0, TanCos: 1}

	near := vertexShader(view, geom.Identity(), Vertex{X: nearPlane, W: 1})
	if !approxEqual(near.Z, -near.W, 1e-6) {
		t.Errorf("near plane: z=%v w=%v, want z == -w", near.Z, near.W)
	}

	far := vertexShader(view, geom.Identity(), Vertex{X: farPlane, W: 1})
	if !approxEqual(far.Z, far.W, 1e-6) {
		t.Errorf("far plane: z=%v w=%v, want z == w", far.Z, far.W)
	}
}

func TestViewportMap(t *testing.T) {
	view := ViewParams{CenterX: 32, CenterY: 32, InvZToScale: 32}
	v := Vertex{X: 4, Y: 6, Z: 8, W: 2}

	got := viewportMap(view, v)
	if !approxEqual(got.W, 0.5, 1e-12) {
		t.Errorf("W = %v, want 0.5", got.W)
	}
	if !approxEqual(got.Z, 4, 1e-12) {
		t.Errorf("Z = %v, want 4", got.Z)
	}
	if !approxEqual(got.X, 160, 1e-9) {
		t.Errorf("X = %v, want 160", got.X)
	}
	if !approxEqual(got.Y, -160, 1e-9) {
		t.Errorf("Y = %v, want -160", got.Y)
	}
}

// TestWindingSymmetry is testable property 6: drawing (a,b,c) with
// ccw=true must paint exactly the same pixels as drawing (a,c,b) with
// ccw=false, since both describe the same triangle with the opposite
// input ordering.
func TestWindingSymmetry(t *testing.T) {
	view := ViewParams{
		Sin: 0, Cos: 1, TanSin: 0, TanCos: 1,
		CenterX: 32, CenterY: 32, InvZToScale: 32,
	}
	a := Vertex{X: 30, Y: -5, Z: -5, W: 1}
	b := Vertex{X: 30, Y: 5, Z: -5, W: 1}
	c := Vertex{X: 30, Y: 0, Z: 5, W: 1}

	const size = 64
	cliptop, clipbottom := fullClip(size)

	destCCW := make([]byte, size*size)
	Fill(view, geom.Identity(), []Vertex{a, b, c}, true, 0, size-1, cliptop, clipbottom, 5, destCCW, size)

	destCW := make([]byte, size*size)
	Fill(view, geom.Identity(), []Vertex{a, c, b}, false, 0, size-1, cliptop, clipbottom, 5, destCW, size)

	for i := range destCCW {
		if destCCW[i] != destCW[i] {
			t.Fatalf("pixel %d: ccw=%d cw=%d, want equal", i, destCCW[i], destCW[i])
		}
	}

	painted := 0
	for _, b := range destCCW {
		if b == 5 {
			painted++
		}
	}
	if painted == 0 {
		t.Fatal("triangle painted nothing; test setup produced a degenerate/offscreen triangle")
	}
}
