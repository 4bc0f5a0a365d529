package bezier

import (
	"math"

	"github.com/engravetools/engrave"
)

// lengthMaxDepth caps the adaptive length recursion.
const lengthMaxDepth = 10

// curvatureSentinel is returned where curvature is effectively infinite.
const curvatureSentinel = 1e10

// Coefficients derives the cubic polynomial coefficients of the segment,
// such that the position at parameter t is
//
//	a·t³ + b·t² + c·t + d
//
// with pair-valued coefficients (x and y share the formula).
func (seg Segment) Coefficients() (a, b, c, d engrave.Pair) {
	c = (seg.P1 - seg.P0).Scaled(3)
	b = (seg.P2 - seg.P1).Scaled(3) - c
	a = seg.P3 - seg.P0 - c - b
	d = seg.P0
	return a, b, c, d
}

// Eval evaluates the segment at parameter t. Callers are expected to pass
// t in [0,1], but the polynomial is well-defined for any real t.
func (seg Segment) Eval(t float64) engrave.Pair {
	a, b, c, d := seg.Coefficients()
	return ((a.Scaled(t) + b).Scaled(t) + c).Scaled(t) + d
}

// First derivative at t.
func (seg Segment) deriv1(t float64) engrave.Pair {
	a, b, c, _ := seg.Coefficients()
	return a.Scaled(3*t*t) + b.Scaled(2*t) + c
}

// Second derivative at t.
func (seg Segment) deriv2(t float64) engrave.Pair {
	a, b, _, _ := seg.Coefficients()
	return a.Scaled(6*t) + b.Scaled(2)
}

// Tangent returns the unit tangent direction at parameter t.
//
// Where the first derivative vanishes (cusps, coincident control points)
// the second and then the third derivative take its place; if all three
// vanish, the fixed direction (1,0) is returned.
func (seg Segment) Tangent(t float64) engrave.Pair {
	d := seg.deriv1(t)
	if vanishes(d) {
		d = seg.deriv2(t)
		if vanishes(d) {
			a, _, _, _ := seg.Coefficients()
			d = a.Scaled(6)
			if vanishes(d) {
				return engrave.P(1, 0)
			}
		}
	}
	u := d.Unit()
	if u.IsOrigin() {
		return engrave.P(1, 0)
	}
	return u
}

// Normal returns the unit normal at parameter t, perpendicular to the
// tangent.
func (seg Segment) Normal(t float64) engrave.Pair {
	return seg.Tangent(t).Ccw()
}

// Curvature returns the signed curvature at parameter t:
//
//	(x'y'' − y'x'') / (x'² + y'²)^(3/2)
//
// Where the denominator vanishes, a large sentinel magnitude is returned
// to signal effectively infinite curvature.
func (seg Segment) Curvature(t float64) float64 {
	d1 := seg.deriv1(t)
	d2 := seg.deriv2(t)
	denom := math.Pow(d1.Dot(d1), 1.5)
	if math.Abs(denom) < _epsilon {
		return curvatureSentinel
	}
	return d1.Cross(d2) / denom
}

// Split subdivides the segment at parameter t by de Casteljau's algorithm.
// The concatenation of the two returned segments reproduces the original
// curve.
func (seg Segment) Split(t float64) (Segment, Segment) {
	p01 := lerp(seg.P0, seg.P1, t)
	p12 := lerp(seg.P1, seg.P2, t)
	p23 := lerp(seg.P2, seg.P3, t)
	p012 := lerp(p01, p12, t)
	p123 := lerp(p12, p23, t)
	p0123 := lerp(p012, p123, t)
	left := Segment{P0: seg.P0, P1: p01, P2: p012, P3: p0123}
	right := Segment{P0: p0123, P1: p123, P2: p23, P3: seg.P3}
	return left, right
}

// Length estimates the arc length of the segment by adaptive bisection:
// the control polygon length is accepted once it agrees with the chord
// length within tolerance. A non-positive tolerance defaults to 0.001.
// Beyond the recursion cap the direct chord distance is used, trading
// accuracy for guaranteed termination.
func (seg Segment) Length(tolerance float64) float64 {
	if tolerance <= 0 {
		tolerance = 0.001
	}
	return seg.length(tolerance, 0)
}

func (seg Segment) length(tolerance float64, depth int) float64 {
	if depth > lengthMaxDepth {
		return seg.P0.Dist(seg.P3)
	}
	chord := seg.P0.Dist(seg.P3)
	poly := seg.P0.Dist(seg.P1) + seg.P1.Dist(seg.P2) + seg.P2.Dist(seg.P3)
	if poly-chord < tolerance {
		return poly
	}
	left, right := seg.Split(0.5)
	return left.length(tolerance, depth+1) + right.length(tolerance, depth+1)
}

func lerp(p, q engrave.Pair, t float64) engrave.Pair {
	return p + (q - p).Scaled(t)
}

func vanishes(p engrave.Pair) bool {
	return math.Abs(p.X()) < _epsilon && math.Abs(p.Y()) < _epsilon
}
