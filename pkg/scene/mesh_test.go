package scene

import (
	"math"
	"testing"

	"github.com/kestrelgfx/halfplane/pkg/geom"
)

func approxEqualVec3(a, b geom.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func triangleMesh() *Mesh {
	m := NewMesh("tri")
	m.Vertices = []MeshVertex{
		{Position: geom.V3(-1, -1, 0)},
		{Position: geom.V3(1, -1, 0)},
		{Position: geom.V3(0, 1, 0)},
	}
	m.Faces = []Face{{V: [3]int{0, 1, 2}}}
	return m
}

func TestCalculateBounds(t *testing.T) {
	m := triangleMesh()
	m.CalculateBounds()
	if !approxEqualVec3(m.BoundsMin, geom.V3(-1, -1, 0), 1e-9) {
		t.Errorf("BoundsMin = %v, want (-1,-1,0)", m.BoundsMin)
	}
	if !approxEqualVec3(m.BoundsMax, geom.V3(1, 1, 0), 1e-9) {
		t.Errorf("BoundsMax = %v, want (1,1,0)", m.BoundsMax)
	}
}

func TestCenterAndSize(t *testing.T) {
	m := triangleMesh()
	m.CalculateBounds()
	if !approxEqualVec3(m.Center(), geom.V3(0, 0, 0), 1e-9) {
		t.Errorf("Center = %v, want origin", m.Center())
	}
	if !approxEqualVec3(m.Size(), geom.V3(2, 2, 0), 1e-9) {
		t.Errorf("Size = %v, want (2,2,0)", m.Size())
	}
}

func TestCalculateNormalsFacesCamera(t *testing.T) {
	m := triangleMesh()
	m.CalculateNormals()
	for i, v := range m.Vertices {
		if !approxEqualVec3(v.Normal, geom.V3(0, 0, 1), 1e-9) {
			t.Errorf("vertex %d normal = %v, want (0,0,1)", i, v.Normal)
		}
	}
}

func TestTransformTranslatesAndRecomputesBounds(t *testing.T) {
	m := triangleMesh()
	m.CalculateBounds()
	m.Transform(geom.Translate(geom.V3(5, 0, 0)))

	want := geom.V3(4, -1, 0)
	if !approxEqualVec3(m.BoundsMin, want, 1e-9) {
		t.Errorf("BoundsMin after translate = %v, want %v", m.BoundsMin, want)
	}
}
