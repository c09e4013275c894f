// Package spatialmath defines the planar vector helpers used by the chain model and the solvers.
// Points are golang/geo r2 points; this package adds the operations r2 leaves out.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// DefaultEpsilon is the distance below which two points are treated as coincident.
const DefaultEpsilon = 1e-12

// NewPointFromAngle returns the point mag units from the origin along the heading theta,
// measured counter-clockwise from +X in radians.
func NewPointFromAngle(theta, mag float64) r2.Point {
	return r2.Point{X: math.Cos(theta) * mag, Y: math.Sin(theta) * mag}
}

// Norm2 returns the squared magnitude of p.
func Norm2(p r2.Point) float64 {
	return p.Dot(p)
}

// Div returns p with both coordinates divided by s. s must be nonzero.
func Div(p r2.Point, s float64) r2.Point {
	return r2.Point{X: p.X / s, Y: p.Y / s}
}

// AddInPlace adds q to p.
func AddInPlace(p *r2.Point, q r2.Point) {
	p.X += q.X
	p.Y += q.Y
}

// SubInPlace subtracts q from p.
func SubInPlace(p *r2.Point, q r2.Point) {
	p.X -= q.X
	p.Y -= q.Y
}

// MulInPlace scales p by s.
func MulInPlace(p *r2.Point, s float64) {
	p.X *= s
	p.Y *= s
}

// DivInPlace divides p by s. s must be nonzero.
func DivInPlace(p *r2.Point, s float64) {
	p.X /= s
	p.Y /= s
}

// Heading returns the angle of p from +X in (-pi, pi].
func Heading(p r2.Point) float64 {
	return math.Atan2(p.Y, p.X)
}

// SafeNormalize returns the unit vector along p. The boolean is false, and the zero point is
// returned, when the magnitude of p does not exceed DefaultEpsilon.
func SafeNormalize(p r2.Point) (r2.Point, bool) {
	mag := p.Norm()
	if mag <= DefaultEpsilon {
		return r2.Point{}, false
	}
	return Div(p, mag), true
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// R2PointAlmostEqual compares two points and returns if they are within epsilon of each other on both axes.
func R2PointAlmostEqual(a, b r2.Point, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon
}
