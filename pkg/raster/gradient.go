package raster

// gradX and gradY solve the plane z = c(x, y) through three points
// (x0,y0,c0), (x1,y1,c1), (x2,y2,c2) for its partial derivatives. Used to
// set up the affine-per-block gradients for 1/w and each perspective
// varying.
func gradX(x0, y0, x1, y1, x2, y2, c0, c1, c2 float64) float64 {
	top := (c1-c2)*(y0-y2) - (c0-c2)*(y1-y2)
	bottom := (x1-x2)*(y0-y2) - (x0-x2)*(y1-y2)
	return top / bottom
}

func gradY(x0, y0, x1, y1, x2, y2, c0, c1, c2 float64) float64 {
	top := (c1-c2)*(x0-x2) - (c0-c2)*(x1-x2)
	bottom := -((x1-x2)*(y0-y2) - (x0-x2)*(y1-y2))
	return top / bottom
}
