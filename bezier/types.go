package bezier

import (
	"github.com/engravetools/engrave"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'geom'
func tracer() tracing.Trace {
	return tracing.Select("geom")
}

const _epsilon = 1e-10

// Segment is one cubic Bézier segment: start point, start-side control
// point, end-side control point, end point. Segments are independent of
// their neighbours; continuity is a property of the containing subpath,
// never assumed here.
type Segment struct {
	P0, P1, P2, P3 engrave.Pair
}

// Anchor is a path vertex with incoming and outgoing control handles.
// For a corner without curvature both handles coincide with the point.
type Anchor struct {
	In  engrave.Pair // incoming handle
	Pt  engrave.Pair // the anchor point itself
	Out engrave.Pair // outgoing handle
}

// Subpath is one continuous chain of cubic segments, represented by its
// anchors. A subpath with fewer than 2 anchors is degenerate and produces
// no segments. Build subpaths with NullSubpath and the fluent
// MoveTo/LineTo/CurveTo calls.
type Subpath struct {
	anchors []Anchor
}

// NullSubpath creates an empty subpath, to be extended by subsequent
// builder calls:
//
//	sp := bezier.NullSubpath().MoveTo(engrave.P(0, 0)).
//	    CurveTo(engrave.P(1, 2), engrave.P(3, 2), engrave.P(4, 0))
func NullSubpath() *Subpath {
	return &Subpath{}
}

// MoveTo starts the subpath at p. Part of builder functionality.
func (sp *Subpath) MoveTo(p engrave.Pair) *Subpath {
	if sp.N() > 0 {
		panic("cannot move within a started subpath")
	}
	sp.anchors = append(sp.anchors, Anchor{In: p, Pt: p, Out: p})
	return sp
}

// LineTo extends the subpath with a straight segment to p; both handles
// collapse onto their anchors. Part of builder functionality.
func (sp *Subpath) LineTo(p engrave.Pair) *Subpath {
	if sp.N() == 0 {
		panic("cannot add line to empty subpath")
	}
	sp.anchors[sp.N()-1].Out = sp.anchors[sp.N()-1].Pt
	sp.anchors = append(sp.anchors, Anchor{In: p, Pt: p, Out: p})
	return sp
}

// CurveTo extends the subpath with a cubic segment to p, with control
// handles c1 (outgoing from the previous anchor) and c2 (incoming to p).
// Part of builder functionality.
func (sp *Subpath) CurveTo(c1, c2, p engrave.Pair) *Subpath {
	if sp.N() == 0 {
		panic("cannot add curve to empty subpath")
	}
	sp.anchors[sp.N()-1].Out = c1
	sp.anchors = append(sp.anchors, Anchor{In: c2, Pt: p, Out: p})
	return sp
}

// Close closes the subpath with a straight segment back to the first
// anchor, unless start and end already coincide. Part of builder
// functionality.
func (sp *Subpath) Close() *Subpath {
	if sp.N() < 2 {
		return sp
	}
	first, last := sp.anchors[0].Pt, sp.anchors[sp.N()-1].Pt
	if !last.Equal(first) {
		sp.LineTo(first)
	}
	return sp
}

// N returns the anchor count of this subpath.
func (sp *Subpath) N() int {
	return len(sp.anchors)
}

// Anchor returns anchor i.
func (sp *Subpath) Anchor(i int) Anchor {
	return sp.anchors[i]
}

// Segment returns the cubic segment between anchors i and i+1.
func (sp *Subpath) Segment(i int) Segment {
	return Segment{
		P0: sp.anchors[i].Pt,
		P1: sp.anchors[i].Out,
		P2: sp.anchors[i+1].In,
		P3: sp.anchors[i+1].Pt,
	}
}

// Segments returns all cubic segments of this subpath, in order.
// Degenerate subpaths yield nil.
func (sp *Subpath) Segments() []Segment {
	if sp.N() < 2 {
		tracer().Debugf("degenerate subpath with %d anchors, no segments", sp.N())
		return nil
	}
	segs := make([]Segment, 0, sp.N()-1)
	for i := 0; i < sp.N()-1; i++ {
		segs = append(segs, sp.Segment(i))
	}
	return segs
}

// Transform returns a new subpath with every anchor point and handle
// mapped through f.
func (sp *Subpath) Transform(f func(engrave.Pair) engrave.Pair) *Subpath {
	mapped := &Subpath{anchors: make([]Anchor, sp.N())}
	for i, a := range sp.anchors {
		mapped.anchors[i] = Anchor{In: f(a.In), Pt: f(a.Pt), Out: f(a.Out)}
	}
	return mapped
}
