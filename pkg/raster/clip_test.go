package raster

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestClipTriangleInsideVolumeIsUnchanged(t *testing.T) {
	v0 := Vertex{X: 0, Y: 0, Z: 0, W: 1}
	v1 := Vertex{X: 1, Y: 0, Z: 0, W: 1}
	v2 := Vertex{X: 0, Y: 1, Z: 0, W: 1}

	verts, n := clipTriangle(v0, v1, v2)
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	want := [3]Vertex{v0, v1, v2}
	for i := range want {
		if verts[i] != want[i] {
			t.Errorf("verts[%d] = %+v, want %+v", i, verts[i], want[i])
		}
	}
}

func TestClipTriangleFullyOutsideProducesNothing(t *testing.T) {
	// All three vertices sit beyond the +x plane (x > w).
	v0 := Vertex{X: 10, Y: 0, Z: 0, W: 1}
	v1 := Vertex{X: 11, Y: 0, Z: 0, W: 1}
	v2 := Vertex{X: 10, Y: 1, Z: 0, W: 1}

	_, n := clipTriangle(v0, v1, v2)
	if n != 0 {
		t.Errorf("n = %d, want 0 for a fully culled triangle", n)
	}
}

// TestClipClosure is testable property 2: every emitted vertex satisfies
// |x|,|y|,|z| <= w within floating tolerance.
func TestClipClosure(t *testing.T) {
	cases := [][3]Vertex{
		{
			{X: -2, Y: 0, Z: 0, W: 1},
			{X: 2, Y: 0, Z: 0, W: 1},
			{X: 0, Y: 2, Z: 0, W: 1},
		},
		{
			{X: 0, Y: 0, Z: -3, W: 1},
			{X: 1, Y: 0, Z: 1, W: 1},
			{X: 0, Y: 1, Z: 1, W: 1},
		},
	}
	for i, tri := range cases {
		verts, n := clipTriangle(tri[0], tri[1], tri[2])
		for j := 0; j < n; j++ {
			v := verts[j]
			const tol = 1e-6
			if v.X > v.W+tol || v.X < -v.W-tol {
				t.Errorf("case %d vertex %d: |x|=%v > w=%v", i, j, v.X, v.W)
			}
			if v.Y > v.W+tol || v.Y < -v.W-tol {
				t.Errorf("case %d vertex %d: |y|=%v > w=%v", i, j, v.Y, v.W)
			}
			if v.Z > v.W+tol || v.Z < -v.W-tol {
				t.Errorf("case %d vertex %d: |z|=%v > w=%v", i, j, v.Z, v.W)
			}
		}
	}
}

// TestClipRoundTripNearPlane is scenario S5: a triangle with one vertex
// behind the near plane clips to a 4-vertex polygon.
func TestClipRoundTripNearPlane(t *testing.T) {
	// v2 sits behind the near plane in clip space (z < -w).
	v0 := Vertex{X: 0, Y: 0, Z: 0.5, W: 1}
	v1 := Vertex{X: 0.5, Y: 0, Z: 0.5, W: 1}
	v2 := Vertex{X: 0, Y: 0.5, Z: -2, W: 1}

	verts, n := clipTriangle(v0, v1, v2)
	if n != 4 {
		t.Fatalf("n = %d, want 4 (one vertex behind near plane clips to a quad)", n)
	}
	for j := 0; j < n; j++ {
		v := verts[j]
		const tol = 1e-6
		if v.Z > v.W+tol || v.Z < -v.W-tol {
			t.Errorf("vertex %d: |z|=%v > w=%v after clipping", j, v.Z, v.W)
		}
	}
}

func TestCullHalfSpaceRejectsFullyOutsideEdge(t *testing.T) {
	_, _, rejected := cullHalfSpace(-1, -2, 0, 1)
	if !rejected {
		t.Error("expected rejection when both endpoints are outside the half-space")
	}
}

func TestCullHalfSpaceKeepsFullyInsideEdge(t *testing.T) {
	t1, t2, rejected := cullHalfSpace(1, 2, 0, 1)
	if rejected {
		t.Fatal("expected no rejection when both endpoints are inside the half-space")
	}
	if !approxEqual(t1, 0, 1e-9) || !approxEqual(t2, 1, 1e-9) {
		t.Errorf("t1,t2 = %v,%v, want 0,1 (interval untouched)", t1, t2)
	}
}
