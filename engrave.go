/*
Package engrave implements 2D points and vectors for toolpath geometry,
together with the numeric predicates shared by the geometry, calibration
and G-code packages.

# BSD License

# Copyright (c) the engrave authors

All rights reserved.

Please refer to the license file for more information.
*/
package engrave

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'engrave'
func tracer() tracing.Trace {
	return tracing.Select("engrave")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Pair Data Type ========================================================

// Pair is a 2D-point or 2D-vector, represented as a complex number.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(float64(0), float64(0))

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// C2P returns a Pair from a complex number.
func C2P(c complex128) Pair {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		tracer().Errorf("created pair for complex.NaN")
		return P(0, 0)
	}
	return P(real(c), imag(c))
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p.C()), imag(p.C())
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p.C())
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	p = P(Zap(p.X()), Zap(p.Y()))
	return p
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	p2 = p2.Zap()
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Mag returns the magnitude (length) of a pair, seen as a vector.
func (p Pair) Mag() float64 {
	return cmplx.Abs(p.C())
}

// Dist returns the distance between two points.
func (p Pair) Dist(p2 Pair) float64 {
	return (p2 - p).Mag()
}

// Unit returns a vector of magnitude 1 with the direction of p.
// The zero vector is returned unchanged.
func (p Pair) Unit() Pair {
	m := p.Mag()
	if Is0(m) {
		return Origin
	}
	return P(p.X()/m, p.Y()/m)
}

// Dot returns the dot product of two pairs, seen as vectors.
func (p Pair) Dot(p2 Pair) float64 {
	return p.X()*p2.X() + p.Y()*p2.Y()
}

// Cross returns the z-component of the cross product of two pairs,
// seen as vectors.
func (p Pair) Cross(p2 Pair) float64 {
	return p.X()*p2.Y() - p.Y()*p2.X()
}

// Angle returns the angle between p and the positive x-axis, in radians.
func (p Pair) Angle() float64 {
	return cmplx.Phase(p.C())
}

// Ccw returns p rotated by 90° counter-clockwise.
func (p Pair) Ccw() Pair {
	return P(-p.Y(), p.X())
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	sin, cos := math.Sincos(theta)
	return P(p.X()*cos-p.Y()*sin, p.X()*sin+p.Y()*cos)
}

// Rotatedaround returns a new pair rotated around v by theta (counterclockwise).
func (p Pair) Rotatedaround(v Pair, theta float64) Pair {
	return (p - v).Rotated(theta) + v
}
