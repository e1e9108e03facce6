package geom

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Matrix) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestRotate90(t *testing.T) {
	assertMatrix(t, "rot90", Rotate(math.Pi/2), Matrix{0, 1, -1, 0, 0, 0})
}

func TestSkew45(t *testing.T) {
	assertMatrix(t, "skew", Skew(math.Pi/4, 0), Matrix{1, 0, 1, 1, 0, 0})
}

func TestMultiplyIdentity(t *testing.T) {
	m := Matrix{2, 0.5, -1, 3, 10, 20}
	assertMatrix(t, "I*m", Identity.Multiply(m), m)
	assertMatrix(t, "m*I", m.Multiply(Identity), m)
}

func TestMultiplyOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 20).Multiply(Scale(2, 3))
	x, y := m.TransformPoint(1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 23)
}

func TestInverseRoundTrip(t *testing.T) {
	m := Compose(Vec2{30, -7}, Vec2{2, 0.5}, Vec2{0.1, 0}, 0.7)
	inv := m.Inverse()
	assertMatrix(t, "m*inv", m.Multiply(inv), Identity)

	x, y := m.TransformPoint(4, 9)
	bx, by := inv.TransformPoint(x, y)
	assertNear(t, "x", bx, 4)
	assertNear(t, "y", by, 9)
}

func TestInverseSingular(t *testing.T) {
	inv := Scale(0, 1).Inverse()
	for i, v := range inv {
		if !math.IsNaN(v) {
			t.Errorf("inv[%d] = %v, want NaN", i, v)
		}
	}
	r := Rect{0, 0, 10, 10}
	x, y := inv.TransformPoint(1, 1)
	if r.Contains(x, y) {
		t.Error("NaN point should not be contained")
	}
}

func TestComposeRotateAboutOrigin(t *testing.T) {
	m := Compose(Vec2{}, Vec2{1, 1}, Vec2{}, math.Pi/2)
	x, y := m.TransformPoint(10, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 10)
}

func TestRectContainsHalfOpen(t *testing.T) {
	r := Rect{10, 20, 5, 5}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{14.999, 24.999, true},
		{15, 20, false},
		{10, 25, false},
		{9.999, 22, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestUnitBetween(t *testing.T) {
	u := UnitBetween(Vec2{1, 1}, Vec2{4, 5})
	assertNear(t, "x", u.X, 0.6)
	assertNear(t, "y", u.Y, 0.8)
	assertNear(t, "dot", u.Dot(Vec2{0, 10}), 8)
}

func TestRectIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		o    Rect
		want bool
	}{
		{Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{Rect{X: -5, Y: -5, Width: 5, Height: 5}, false},
		{Rect{X: 2, Y: 2, Width: 1, Height: 1}, true},
	}
	for _, tt := range tests {
		if got := r.Intersects(tt.o); got != tt.want {
			t.Errorf("Intersects(%+v) = %v, want %v", tt.o, got, tt.want)
		}
	}
}
