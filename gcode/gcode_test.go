package gcode

import (
	"testing"

	"github.com/engravetools/engrave"
	"github.com/engravetools/engrave/bezier"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func lineSub(ax, ay, bx, by float64) *bezier.Subpath {
	return bezier.NullSubpath().MoveTo(engrave.P(ax, ay)).LineTo(engrave.P(bx, by))
}

// bumpSub is a symmetric cap whose biarc approximation is a pair of
// clockwise arcs around center (1,-1).
func bumpSub() *bezier.Subpath {
	return bezier.NullSubpath().MoveTo(engrave.P(0, 0)).
		CurveTo(engrave.P(0.5, 0.5), engrave.P(1.5, 0.5), engrave.P(2, 0))
}

func TestFormat(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "10", Format(10))
	assert.Equal(t, "2.5", Format(2.5))
	assert.Equal(t, "1.2346", Format(1.23456789))
	assert.Equal(t, "0", Format(0))
	assert.Equal(t, "0", Format(-0.00001))
	assert.Equal(t, "-3.25", Format(-3.25))
	assert.Equal(t, "30", FormatN(30, 1))
}

func TestGeneratorCommands(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := NewGenerator()
	assert.Equal(t, "M03", g.ToolOn(0))
	assert.Equal(t, "M03 S30", g.ToolOn(30))
	assert.Equal(t, "M05", g.ToolOff())
	assert.Equal(t, "G4 P0.5", g.Dwell(0.5))
	assert.Equal(t, "; hello", g.Comment("hello"))
	assert.Equal(t, "F25", g.FeedRate(25))
	assert.Equal(t, "G28 X Y", g.Home("XY"))
	assert.Equal(t, "G21", g.UnitsMM())
	assert.Equal(t, "G90", g.AbsoluteMode())
	assert.Equal(t, "M02", g.ProgramEnd())
	assert.Equal(t, "M00", g.ProgramStop())
}

func TestGeneratorAxisDeduplication(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := NewGenerator()
	assert.Equal(t, "G0 X0 Y0", g.MoveTo(0, 0))
	// Y is unchanged and omitted; the feed still applies.
	assert.Equal(t, "G1 X10 F30", g.LineTo(10, 0, 30))
	// Both axes unchanged: the command is still emitted.
	assert.Equal(t, "G1 F30", g.LineTo(10, 0, 30))
	g.Reset()
	assert.Equal(t, "G1 X10 Y0 F30", g.LineTo(10, 0, 30))
}

func TestEmitSingleLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	motions := Emit([]*bezier.Subpath{lineSub(0, 0, 10, 0)},
		Options{Mode: ModePolyline, Segments: 1, Feed: 30})
	assert.Len(t, motions, 4)
	assert.Equal(t, MotionRapid, motions[0].Kind)
	assert.Equal(t, MotionToolOn, motions[1].Kind)
	assert.Equal(t, MotionLinear, motions[2].Kind)
	assert.InDelta(t, 10.0, motions[2].Target.X(), 1e-9)
	assert.Equal(t, 30.0, motions[2].Feed)
	assert.Equal(t, MotionToolOff, motions[3].Kind)
}

func TestEmitSkipsDegenerateSubpaths(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	motions := Emit([]*bezier.Subpath{
		bezier.NullSubpath(),
		bezier.NullSubpath().MoveTo(engrave.P(5, 5)),
		lineSub(0, 0, 1, 0),
	}, Options{Mode: ModePolyline, Segments: 1, Feed: 30})
	// Only the real subpath produces motions; the tool never fires for
	// the degenerate ones.
	assert.Len(t, motions, 4)
	assert.InDelta(t, 0.0, motions[0].Target.X(), 1e-9)
}

func TestRenderLineProgram(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	motions := Emit([]*bezier.Subpath{lineSub(0, 0, 10, 0)},
		Options{Mode: ModePolyline, Segments: 1, Feed: 30})
	lines := NewGenerator().Render(motions, DocFrame{})
	assert.Equal(t, []string{
		"G0 X0 Y0",
		"M03",
		"G1 X10 F30",
		"M05",
	}, lines)
}

func TestRenderBiarc(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	motions := Emit([]*bezier.Subpath{bumpSub()},
		Options{Mode: ModeBiarc, Feed: 30})
	lines := NewGenerator().Render(motions, DocFrame{})
	assert.Equal(t, []string{
		"G0 X0 Y0",
		"M03",
		"G02 X1 Y0.4142 I1 J-1",
		"G02 X2 Y0 I0 J-1.4142",
		"M05",
	}, lines)
}

func TestRenderFlipY(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	motions := Emit([]*bezier.Subpath{bumpSub()},
		Options{Mode: ModeBiarc, Feed: 30})
	lines := NewGenerator().Render(motions, DocFrame{Height: 10, FlipY: true})
	// The vertical axis flips against the document height and the J
	// center offset inverts its sign; I is untouched.
	assert.Equal(t, "G0 X0 Y10", lines[0])
	assert.Equal(t, "G02 X1 Y9.5858 I1 J1", lines[2])
	assert.Equal(t, "G02 X2 Y10 I0 J1.4142", lines[3])
}

func TestRenderScaling(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	motions := Emit([]*bezier.Subpath{lineSub(0, 0, 20, 0)},
		Options{Mode: ModePolyline, Segments: 1, Feed: 30})
	lines := NewGenerator().Render(motions, DocFrame{PxPerUnit: 2})
	assert.Equal(t, "G1 X10 F30", lines[2])
}

func TestRenderToolPower(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	motions := Emit([]*bezier.Subpath{lineSub(0, 0, 1, 0)},
		Options{Mode: ModePolyline, Segments: 1, Feed: 30, Power: 80})
	lines := NewGenerator().Render(motions, DocFrame{})
	assert.Equal(t, "M03 S80", lines[1])
}
