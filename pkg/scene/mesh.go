// Package scene loads demo geometry and art for the viewer: GLTF/GLB
// meshes and embedded textures, turned into the flat triangle lists and
// column-major indexed textures pkg/raster consumes. It is the "world
// geometry extraction ... texture loading, asset management" collaborator
// pkg/raster assumes exists outside the core.
package scene

import "github.com/kestrelgfx/halfplane/pkg/geom"

// MeshVertex holds the attributes the rasterizer core and its lighting-
// free demo viewer need. There is no material/PBR data here — the core
// only ever consumes a flat color or a single texture per triangle.
type MeshVertex struct {
	Position geom.Vec3
	Normal   geom.Vec3
	UV       geom.Vec2
}

// Face is a triangle of indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// Mesh is a triangle mesh loaded from disk, in object space.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	BoundsMin geom.Vec3
	BoundsMax geom.Vec3
}

// NewMesh creates an empty, named mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Faces) }

// CalculateBounds recomputes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() geom.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the bounding box dimensions.
func (m *Mesh) Size() geom.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// CalculateNormals assigns each triangle's face normal to its three
// vertices (flat shading). Nothing in the demo viewer reads normals (it
// does no lighting), so this is the only normal pass pkg/scene carries —
// no smooth-normal averaging.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position
		n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		m.Vertices[f.V[0]].Normal = n
		m.Vertices[f.V[1]].Normal = n
		m.Vertices[f.V[2]].Normal = n
	}
}

// Transform applies mat to every vertex position and its normal
// (direction-only, ignoring translation).
func (m *Mesh) Transform(mat geom.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}
