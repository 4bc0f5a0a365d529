package orient

import (
	"fmt"

	"github.com/engravetools/engrave"
)

// Similarity is a coordinate map composed of uniform scale, rotation and
// translation, anchored at a drawing-space reference point. Applying it
// translates by −From, scales, rotates, then translates by To, in that
// fixed order.
type Similarity struct {
	Scale    float64
	Rotation float64 // radians, counterclockwise
	From     engrave.Pair
	To       engrave.Pair
}

// Identity returns the transform that maps every point onto itself.
func Identity() Similarity {
	return Similarity{Scale: 1}
}

// Debug Stringer for a similarity transform.
func (s Similarity) String() string {
	return fmt.Sprintf("[scale %g, rot %g, %v -> %v]", s.Scale, s.Rotation, s.From, s.To)
}

// Apply maps a drawing-space point into machine space.
func (s Similarity) Apply(p engrave.Pair) engrave.Pair {
	return (p - s.From).Scaled(s.Scale).Rotated(s.Rotation) + s.To
}

// Solve derives the similarity transform from the first two
// correspondences:
//
//	scale    = |machine2 − machine1| / |drawing2 − drawing1|
//	rotation = angle(machine2 − machine1) − angle(drawing2 − drawing1)
//
// Anisotropic reference placement is not detected; the solve always
// produces the uniform scale given by the segment length ratio. Returns
// ErrDegenerateBasis if the drawing points coincide: a degenerate basis
// cannot determine scale and rotation.
func (c Calibration) Solve() (Similarity, error) {
	if err := c.Validate(); err != nil {
		return Similarity{}, err
	}
	d1, d2 := c[0].Drawing, c[1].Drawing
	m1, m2 := c[0].Machine, c[1].Machine
	base := d2 - d1
	if base.Mag() < basisEps {
		return Similarity{}, ErrDegenerateBasis
	}
	span := m2 - m1
	s := Similarity{
		Scale:    span.Mag() / base.Mag(),
		Rotation: span.Angle() - base.Angle(),
		From:     d1,
		To:       m1,
	}
	tracer().Debugf("solved calibration %v", s)
	return s, nil
}
