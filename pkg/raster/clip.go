package raster

// cullHalfSpace shrinks the surviving edge interval [t1, t2] against a
// single half-space given the plane's signed distance at the edge's two
// endpoints (t=0 and t=1). It reports whether the edge is entirely outside
// the plane, in which case t1/t2 are left unspecified.
func cullHalfSpace(clipDistance1, clipDistance2, t1, t2 float64) (float64, float64, bool) {
	d1 := clipDistance1*(1-t1) + clipDistance2*t1
	d2 := clipDistance1*(1-t2) + clipDistance2*t2
	if d1 < 0 && d2 < 0 {
		return t1, t2, true
	}
	if d1 < 0 {
		t1 = max(-clipDistance1/(clipDistance2-clipDistance1), t1)
	}
	if d2 < 0 {
		t2 = min(1+clipDistance2/(clipDistance1-clipDistance2), t2)
	}
	return t1, t2, false
}

// clipEdge clips the directed edge v1->v2 against all six canonical
// planes (-w <= x,y,z <= w) and appends the surviving 0, 1 or 2 vertices
// to out, advancing n. If t1 == 0 the original v1 is emitted unchanged so
// that shared vertices between consecutive edges are never reconstructed
// through floating-point interpolation.
func clipEdge(v1, v2 Vertex, out *[6]Vertex, n *int) {
	t1, t2 := 0.0, 1.0
	var rejected bool
	t1, t2, rejected = cullHalfSpace(v1.X+v1.W, v2.X+v2.W, t1, t2)
	if !rejected {
		t1, t2, rejected = cullHalfSpace(v1.W-v1.X, v2.W-v2.X, t1, t2)
	}
	if !rejected {
		t1, t2, rejected = cullHalfSpace(v1.Y+v1.W, v2.Y+v2.W, t1, t2)
	}
	if !rejected {
		t1, t2, rejected = cullHalfSpace(v1.W-v1.Y, v2.W-v2.Y, t1, t2)
	}
	if !rejected {
		t1, t2, rejected = cullHalfSpace(v1.Z+v1.W, v2.Z+v2.W, t1, t2)
	}
	if !rejected {
		t1, t2, rejected = cullHalfSpace(v1.W-v1.Z, v2.W-v2.Z, t1, t2)
	}
	if rejected {
		return
	}

	if t1 == 0 {
		out[*n] = v1
	} else {
		out[*n] = Lerp(v1, v2, t1)
	}
	*n++

	if t2 != 1 {
		out[*n] = Lerp(v1, v2, t2)
		*n++
	}
}

// clipTriangle runs Sutherland-Hodgman clipping on all three directed
// edges of (v0, v1, v2) and returns the ordered clipped polygon, at most
// six vertices, all satisfying |x|,|y|,|z| <= w.
func clipTriangle(v0, v1, v2 Vertex) ([6]Vertex, int) {
	var verts [6]Vertex
	n := 0
	clipEdge(v0, v1, &verts, &n)
	clipEdge(v1, v2, &verts, &n)
	clipEdge(v2, v0, &verts, &n)
	return verts, n
}
