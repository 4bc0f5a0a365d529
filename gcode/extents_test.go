package gcode

import (
	"testing"

	"github.com/engravetools/engrave"
	"github.com/engravetools/engrave/bezier"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func rect(x0, y0, x1, y1 float64) *bezier.Subpath {
	return bezier.NullSubpath().MoveTo(engrave.P(x0, y0)).
		LineTo(engrave.P(x1, y0)).
		LineTo(engrave.P(x1, y1)).
		LineTo(engrave.P(x0, y1)).
		Close()
}

func TestExtentsEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, _, ok := Extents(nil, 1)
	assert.False(t, ok)
	_, _, ok = Extents([]*bezier.Subpath{bezier.NullSubpath()}, 1)
	assert.False(t, ok)
}

func TestExtentsOpenPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	min, max, ok := Extents([]*bezier.Subpath{lineSub(0, 0, 10, 5)}, 1)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, min.X(), 1e-9)
	assert.InDelta(t, 0.0, min.Y(), 1e-9)
	assert.InDelta(t, 10.0, max.X(), 1e-9)
	assert.InDelta(t, 5.0, max.Y(), 1e-9)
}

func TestExtentsMultipleSubpaths(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	min, max, ok := Extents([]*bezier.Subpath{
		rect(0, 0, 10, 10),
		rect(5, 0, 15, 10),
	}, 1)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, min.X(), 1e-9)
	assert.InDelta(t, 15.0, max.X(), 1e-9)
	assert.InDelta(t, 10.0, max.Y(), 1e-9)
}

func TestOutlineDisjoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	merged := Outline([]*bezier.Subpath{
		rect(0, 0, 10, 10),
		rect(20, 0, 30, 10),
	}, 1)
	assert.Len(t, merged, 2)
}

func TestOutlineOverlappingFuse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	merged := Outline([]*bezier.Subpath{
		rect(0, 0, 10, 10),
		rect(5, 0, 15, 10),
	}, 1)
	assert.Len(t, merged, 1)
}

func TestOutlineSkipsThinSubpaths(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	merged := Outline([]*bezier.Subpath{lineSub(0, 0, 10, 0)}, 1)
	assert.Empty(t, merged)
}
