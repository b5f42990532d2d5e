package main

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/kestrelgfx/halfplane/pkg/geom"
)

func TestFallbackQuadIsTwoTriangles(t *testing.T) {
	m := fallbackQuad()
	if m.VertexCount() != 4 {
		t.Fatalf("VertexCount = %d, want 4", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", m.TriangleCount())
	}
}

func TestBuildVerticesFlattensFaces(t *testing.T) {
	m := fallbackQuad()
	vertices := buildVertices(m)
	if len(vertices) != m.TriangleCount()*3 {
		t.Fatalf("len(vertices) = %d, want %d", len(vertices), m.TriangleCount()*3)
	}
	first := m.Vertices[m.Faces[0].V[0]]
	if vertices[0].X != first.Position.X || vertices[0].Y != first.Position.Y {
		t.Errorf("vertices[0] position = (%v,%v), want (%v,%v)", vertices[0].X, vertices[0].Y, first.Position.X, first.Position.Y)
	}
	if vertices[0].Varying[0] != first.UV.X || vertices[0].Varying[1] != first.UV.Y {
		t.Errorf("vertices[0] uv = (%v,%v), want (%v,%v)", vertices[0].Varying[0], vertices[0].Varying[1], first.UV.X, first.UV.Y)
	}
}

func TestCenterMeshNormalizesToUnitSpan(t *testing.T) {
	m := fallbackQuad()
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Add(geom.V3(10, 10, 10)).Scale(5)
	}
	centerMesh(m)

	m.CalculateBounds()
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if math.Abs(maxDim-2) > 1e-9 {
		t.Errorf("max bounds dimension after centering = %v, want 2", maxDim)
	}
	center := m.Center()
	if center.Len() > 1e-9 {
		t.Errorf("center after centering = %v, want origin", center)
	}
}

func TestGrayscalePaletteSetsBackgroundAtZero(t *testing.T) {
	pal := grayscalePalette(10, 20, 30)
	if pal[0] != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pal[0] = %v, want background color", pal[0])
	}
	if pal[255].R != 255 {
		t.Errorf("pal[255].R = %d, want 255", pal[255].R)
	}
}

func TestBuildPaletteFallsBackToGrayscale(t *testing.T) {
	pal, err := buildPalette("", nil, 1, 2, 3)
	if err != nil {
		t.Fatalf("buildPalette: %v", err)
	}
	if pal[0] != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("pal[0] = %v, want background color", pal[0])
	}
}

func TestBuildPalettePrefersTextureImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	pal, err := buildPalette("", img, 0, 0, 0)
	if err != nil {
		t.Fatalf("buildPalette: %v", err)
	}
	foundRed := false
	for _, c := range pal {
		if c.R > 200 {
			foundRed = true
		}
	}
	if !foundRed {
		t.Error("expected the quantized palette to include a reddish entry from the source image")
	}
}
