package gcode

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/engravetools/engrave"
	"github.com/engravetools/engrave/bezier"
)

// contour flattens a subpath into a polyclip contour with the given
// number of chords per segment.
func contour(sp *bezier.Subpath, samples int) polyclip.Contour {
	var c polyclip.Contour
	if sp.N() < 2 {
		return c
	}
	start := sp.Anchor(0).Pt
	c.Add(polyclip.Point{X: start.X(), Y: start.Y()})
	for _, seg := range sp.Segments() {
		for _, pr := range bezier.Flatten(seg, samples) {
			c.Add(polyclip.Point{X: pr.End.X(), Y: pr.End.Y()})
		}
	}
	return c
}

// Outline merges the flattened subpath outlines into one polygon.
// Subpaths too thin to enclose area are left out; overlapping outlines
// fuse, disjoint ones stay separate contours. Contours are implicitly
// closed.
func Outline(subpaths []*bezier.Subpath, samples int) polyclip.Polygon {
	var merged polyclip.Polygon
	for _, sp := range subpaths {
		c := contour(sp, samples)
		if len(c) < 3 {
			continue
		}
		poly := polyclip.Polygon{c}
		if len(merged) == 0 {
			merged = poly
		} else {
			merged = merged.Construct(polyclip.UNION, poly)
		}
	}
	return merged
}

// Extents computes the axis-aligned bounding box of the flattened
// subpaths. Unlike Outline it also accounts for open and degenerate-area
// subpaths. Reports ok as false when there is no geometry at all.
func Extents(subpaths []*bezier.Subpath, samples int) (min, max engrave.Pair, ok bool) {
	var poly polyclip.Polygon
	for _, sp := range subpaths {
		c := contour(sp, samples)
		if len(c) == 0 {
			continue
		}
		poly.Add(c)
	}
	if len(poly) == 0 {
		return engrave.Origin, engrave.Origin, false
	}
	bb := poly.BoundingBox()
	return engrave.P(bb.Min.X, bb.Min.Y), engrave.P(bb.Max.X, bb.Max.Y), true
}
