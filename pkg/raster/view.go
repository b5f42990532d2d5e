package raster

import "github.com/kestrelgfx/halfplane/pkg/geom"

// ViewParams bundles the per-frame state the surrounding renderer would
// otherwise expose as globals (ViewPos, ViewSin/Cos, the screen-center and
// z-to-scale constants). The core never reads process-wide state; callers
// build one of these per frame and pass it into Draw/Fill.
type ViewParams struct {
	Pos geom.Vec3

	// Sin/Cos is the current view angle; TanSin/TanCos is the same angle
	// pre-multiplied into the perspective tangent the vertex shader needs
	// for its (tx, tz) rotation. Kept as four separate scalars, matching
	// the collaborator interface in spec section 6, rather than derived
	// from Sin/Cos on every vertex.
	Sin, Cos       float64
	TanSin, TanCos float64

	CenterX, CenterY float64
	InvZToScale      float64
}
