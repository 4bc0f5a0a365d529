package bezier

import (
	"math"

	"github.com/engravetools/engrave"
)

// Kind discriminates primitive variants.
type Kind int8

const (
	// KindLine is a straight line from Start to End.
	KindLine Kind = iota
	// KindArc is a circular arc from Start to End around Center,
	// sweeping Angle radians (negative = clockwise).
	KindArc
)

// Primitive is one line or circular arc produced by flattening or biarc
// approximation. Primitives are immutable once created.
type Primitive struct {
	Kind   Kind
	Start  engrave.Pair
	End    engrave.Pair
	Center engrave.Pair // arcs only
	Angle  float64      // arcs only: signed sweep in radians
}

// DefaultBiarcDepth is the maximum subdivision depth used by callers that
// do not configure one.
const DefaultBiarcDepth = 4

const (
	// minChord: chords shorter than this collapse to a line.
	minChord = 0.01
	// straightTol: control point deviation below which a segment counts
	// as visually straight.
	straightTol = 0.1
	// tangentEps guards tangent magnitude and parallelism tests.
	tangentEps = 1e-6
)

// Approximate reduces a segment to a sequence of line and arc primitives.
//
// Each (sub)segment is handled in order: exhausted depth, a near-zero
// chord or visual straightness yield a single line; otherwise a tangent
// continuous pair of arcs is fitted. Where no valid pair exists (vanishing
// or parallel end tangents) the segment is split at t=0.5 and both halves
// are approximated one level deeper. With maxDepth <= 0 every segment
// reduces to exactly one line. Primitives are returned in curve-traversal
// order.
func Approximate(seg Segment, maxDepth int) []Primitive {
	return approximate(seg, 0, maxDepth)
}

func approximate(seg Segment, depth, maxDepth int) []Primitive {
	if depth >= maxDepth {
		tracer().Debugf("biarc depth %d exhausted, falling back to line", depth)
		return []Primitive{lineBetween(seg.P0, seg.P3)}
	}
	chord := seg.P0.Dist(seg.P3)
	if chord < minChord {
		return []Primitive{lineBetween(seg.P0, seg.P3)}
	}
	v := seg.P3 - seg.P0
	d1 := math.Abs((seg.P1 - seg.P0).Cross(v)) / chord
	d2 := math.Abs((seg.P2 - seg.P0).Cross(v)) / chord
	if math.Max(d1, d2) < straightTol {
		return []Primitive{lineBetween(seg.P0, seg.P3)}
	}
	if prims, ok := fitBiarc(seg); ok {
		return prims
	}
	left, right := seg.Split(0.5)
	prims := approximate(left, depth+1, maxDepth)
	return append(prims, approximate(right, depth+1, maxDepth)...)
}

// fitBiarc fits a tangent continuous pair of circular arcs to the segment.
//
// With unit end tangents T0 and T3 the join point is chosen with equal
// tangent lengths d on both sides: the points P0+d·T0 and P3−d·T3 span the
// join chord, and d solves
//
//	2(1 − T0·T3)·d² + 2(V·(T0+T3))·d − V·V = 0,   V = P3 − P0
//
// so that both arcs share their tangent at the join. Reports no fit for
// vanishing or parallel tangents and for joins falling behind an endpoint;
// the caller subdivides in that case.
func fitBiarc(seg Segment) ([]Primitive, bool) {
	p0, p3 := seg.P0, seg.P3
	t0 := seg.P1 - seg.P0
	t3 := seg.P3 - seg.P2
	if t0.Mag() < tangentEps || t3.Mag() < tangentEps {
		return nil, false
	}
	t0 = t0.Unit()
	t3 = t3.Unit()
	if math.Abs(t0.Cross(t3)) < tangentEps {
		return nil, false
	}
	v := p3 - p0
	tsum := t0 + t3
	q := 2 * (1 - t0.Dot(t3)) // > 0 for non-parallel tangents
	vt := v.Dot(tsum)
	disc := vt*vt + q*v.Dot(v)
	d := (-vt + math.Sqrt(disc)) / q
	if d < tangentEps {
		return nil, false
	}
	q1 := p0 + t0.Scaled(d)
	q2 := p3 - t3.Scaled(d)
	join := (q1 + q2).Scaled(0.5)
	first := arcBetween(p0, join, t0, true)
	second := arcBetween(join, p3, t3, false)
	return []Primitive{first, second}, true
}

// arcBetween constructs the circular arc from a to b whose tangent at the
// anchor endpoint (a if atStart, b otherwise) is tan. Degenerates to a
// line where the far point lies on the anchor's tangent line.
func arcBetween(a, b, tan engrave.Pair, atStart bool) Primitive {
	anchor, far := a, b
	if !atStart {
		anchor, far = b, a
	}
	n := tan.Ccw()
	den := 2 * (far - anchor).Dot(n)
	if math.Abs(den) < tangentEps {
		return lineBetween(a, b)
	}
	r := (far - anchor).Dot(far-anchor) / den
	center := anchor + n.Scaled(r)
	// Traversal is counterclockwise iff the ccw tangent at the anchor
	// points along the direction of travel.
	ccw := (anchor - center).Ccw().Dot(tan) > 0
	sweep := (b - center).Angle() - (a - center).Angle()
	if ccw {
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
	} else {
		for sweep >= 0 {
			sweep -= 2 * math.Pi
		}
	}
	return Primitive{Kind: KindArc, Start: a, End: b, Center: center, Angle: sweep}
}

func lineBetween(a, b engrave.Pair) Primitive {
	return Primitive{Kind: KindLine, Start: a, End: b}
}
