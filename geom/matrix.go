package geom

import "math"

// Matrix is a 2D affine transform stored as [a, b, c, d, tx, ty].
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Translate returns a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{1, 0, 0, 1, x, y}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix for an angle in radians. Positive angles
// rotate clockwise in a y-down coordinate system.
func Rotate(rad float64) Matrix {
	sin, cos := math.Sincos(rad)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Skew returns a skew matrix for angles in radians.
func Skew(sx, sy float64) Matrix {
	var tx, ty float64
	if sx != 0 {
		tx = math.Tan(sx)
	}
	if sy != 0 {
		ty = math.Tan(sy)
	}
	return Matrix{1, ty, tx, 1, 0, 0}
}

// Multiply returns m * o, so o is applied first.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// TransformPoint applies m to (x, y).
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Inverse returns the inverse of m. A singular matrix has no inverse; the
// result is then all NaN so that any point mapped through it fails every
// containment test.
func (m Matrix) Inverse() Matrix {
	det := m.Determinant()
	if det > -1e-12 && det < 1e-12 {
		nan := math.NaN()
		return Matrix{nan, nan, nan, nan, nan, nan}
	}
	inv := 1.0 / det
	a := m[3] * inv
	b := -m[1] * inv
	c := -m[2] * inv
	d := m[0] * inv
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Determinant returns ad - bc.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity
}

// Compose builds the transform produced by applying, in order: skew, scale,
// rotate and finally translate. Angles are in radians.
func Compose(translate, scale, skew Vec2, rotate float64) Matrix {
	m := Skew(skew.X, skew.Y)
	m = Scale(scale.X, scale.Y).Multiply(m)
	m = Rotate(rotate).Multiply(m)
	return Translate(translate.X, translate.Y).Multiply(m)
}
