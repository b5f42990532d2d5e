package geom

import (
	"math"
	"testing"
)

func approxEqualVec4(a, b Vec4, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol && math.Abs(a.W-b.W) <= tol
}

func TestIdentityIsNoOp(t *testing.T) {
	v := V4(1, 2, 3, 1)
	got := Identity().MulVec4(v)
	if !approxEqualVec4(got, v, 1e-9) {
		t.Errorf("identity * v = %v, want %v", got, v)
	}
}

func TestMulIsAssociativeWithVec4(t *testing.T) {
	a := Translate(V3(1, -2, 3))
	b := RotateY(0.7)
	v := V4(1, 2, 3, 1)

	lhs := a.Mul(b).MulVec4(v)
	rhs := a.MulVec4(b.MulVec4(v))

	if !approxEqualVec4(lhs, rhs, 1e-9) {
		t.Errorf("(A*B)*v = %v, want A*(B*v) = %v", lhs, rhs)
	}
}

func TestTranslateInverse(t *testing.T) {
	p := V3(4, -5, 6)
	m := Translate(p).Mul(Translate(p.Negate()))
	v := V4(1, 2, 3, 1)

	got := m.MulVec4(v)
	if !approxEqualVec4(got, v, 1e-9) {
		t.Errorf("translate(p)*translate(-p)*v = %v, want %v", got, v)
	}
}

func TestRotateAxisOppositeAnglesCancel(t *testing.T) {
	axis := V3(0, 0, 1)
	m := RotateAxis(axis, math.Pi/2).Mul(RotateAxis(axis, -math.Pi/2))
	v := V4(1, 0, 0, 1)

	got := m.MulVec4(v)
	if !approxEqualVec4(got, v, 1e-5) {
		t.Errorf("rotate(pi/2)*rotate(-pi/2)*v = %v, want %v", got, v)
	}
}

func TestRotateAxisMatchesRotateZ(t *testing.T) {
	angle := 0.37
	got := RotateAxis(V3(0, 0, 1), angle)
	want := RotateZ(angle)

	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("RotateAxis(Z, %v)[%d] = %v, want %v", angle, i, got[i], want[i])
		}
	}
}

func TestNullMatrix(t *testing.T) {
	n := Null()
	for i, c := range n {
		if c != 0 {
			t.Errorf("Null()[%d] = %v, want 0", i, c)
		}
	}
}
