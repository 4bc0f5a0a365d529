// Package gcode emits machine motion commands for toolpath geometry.
/*

The package splits emission into two halves. Emit is a pure
transformation: it walks machine-space subpaths and produces an ordered
sequence of motion primitives (rapid move, linear move, arc, tool on/off),
dispatching each cubic segment to the polyline flattener or the biarc
approximator. A Generator then serializes motion primitives to G-code
text, tracking the last emitted position so that unchanged axis words are
omitted, and applying the document serialization frame (pixel scaling and
the viewBox-height Y flip that puts the document's bottom-left corner at
the machine origin).

Program framing (absolute positioning, units directive, shutdown
sequence), output optimization and file export with numeric filename
suffixing live in this package as well; their literal output sequence is
part of the compatibility contract with the consuming machine controllers.
*/
package gcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/engravetools/engrave"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'gcode'
func tracer() tracing.Trace {
	return tracing.Select("gcode")
}

// coordEps: axis words repeating the previous position within this
// tolerance are omitted.
const coordEps = 1e-6

// Format renders a coordinate with 4 decimal places, stripping trailing
// zeros and a trailing decimal point.
func Format(v float64) string {
	return FormatN(v, 4)
}

// FormatN renders a value with the given number of decimal places,
// stripping trailing zeros and a trailing decimal point.
func FormatN(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-0" {
		s = "0"
	}
	return s
}

// Generator serializes motion commands to G-code lines. It tracks the
// last emitted position for axis-word deduplication; the cursor is local
// to one rendering run and is reset by Render.
type Generator struct {
	curX, curY float64
	hasX, hasY bool
}

// NewGenerator creates a Generator with an undefined cursor position.
func NewGenerator() *Generator {
	return &Generator{}
}

// Reset clears the cursor; the next command emits both axis words.
func (g *Generator) Reset() {
	g.hasX, g.hasY = false, false
}

// appendPosition adds X/Y words for coordinates that changed and advances
// the cursor. The logical position advances even where a word is omitted.
func (g *Generator) appendPosition(parts []string, x, y float64) []string {
	if !g.hasX || abs(x-g.curX) > coordEps {
		parts = append(parts, "X"+Format(x))
	}
	if !g.hasY || abs(y-g.curY) > coordEps {
		parts = append(parts, "Y"+Format(y))
	}
	g.curX, g.curY = x, y
	g.hasX, g.hasY = true, true
	return parts
}

// MoveTo emits a rapid move (G0) to the given position.
func (g *Generator) MoveTo(x, y float64) string {
	return strings.Join(g.appendPosition([]string{"G0"}, x, y), " ")
}

// LineTo emits a linear move (G1) to the given position. A positive feed
// rate is appended at 1 decimal place.
func (g *Generator) LineTo(x, y, feed float64) string {
	parts := g.appendPosition([]string{"G1"}, x, y)
	if feed > 0 {
		parts = append(parts, "F"+FormatN(feed, 1))
	}
	return strings.Join(parts, " ")
}

// ArcTo emits an arc move (G02 clockwise, G03 counterclockwise) to the
// given position. i and j are the offsets from the current position to
// the arc center and are always emitted. A positive feed rate is
// appended.
func (g *Generator) ArcTo(x, y, i, j float64, clockwise bool, feed float64) string {
	code := "G03"
	if clockwise {
		code = "G02"
	}
	parts := g.appendPosition([]string{code}, x, y)
	parts = append(parts, "I"+Format(i), "J"+Format(j))
	if feed > 0 {
		parts = append(parts, "F"+FormatN(feed, 1))
	}
	return strings.Join(parts, " ")
}

// ToolOn emits the tool-on command (M03), with a power word for a
// positive power value.
func (g *Generator) ToolOn(power int) string {
	if power > 0 {
		return fmt.Sprintf("M03 S%d", power)
	}
	return "M03"
}

// ToolOff emits the tool-off command (M05).
func (g *Generator) ToolOff() string {
	return "M05"
}

// Dwell emits a pause (G4) for the given number of seconds.
func (g *Generator) Dwell(seconds float64) string {
	return "G4 P" + FormatN(seconds, 2)
}

// Comment emits a comment line.
func (g *Generator) Comment(text string) string {
	return "; " + text
}

// FeedRate emits a standalone feed rate command.
func (g *Generator) FeedRate(feed float64) string {
	return "F" + FormatN(feed, 1)
}

// UnitsMM emits the millimeter units directive (G21).
func (g *Generator) UnitsMM() string { return "G21" }

// UnitsInches emits the inch units directive (G20).
func (g *Generator) UnitsInches() string { return "G20" }

// AbsoluteMode emits the absolute positioning directive (G90).
func (g *Generator) AbsoluteMode() string { return "G90" }

// RelativeMode emits the relative positioning directive (G91).
func (g *Generator) RelativeMode() string { return "G91" }

// Home emits a homing command (G28) for the given axes, e.g. "XY".
func (g *Generator) Home(axes string) string {
	parts := []string{"G28"}
	for _, axis := range axes {
		parts = append(parts, string(axis))
	}
	return strings.Join(parts, " ")
}

// ProgramEnd emits the program end command (M02).
func (g *Generator) ProgramEnd() string { return "M02" }

// ProgramStop emits the optional stop command (M00).
func (g *Generator) ProgramStop() string { return "M00" }

// DocFrame is the serialization coordinate frame: drawing coordinates are
// divided by PxPerUnit, and with FlipY set the vertical axis is flipped
// against Height so that the document's bottom-left corner becomes the
// machine origin. The J arc-center offset inverts its sign under the
// flip. The zero value (with PxPerUnit defaulting to 1) renders machine
// coordinates unchanged.
type DocFrame struct {
	PxPerUnit float64
	Height    float64
	FlipY     bool
}

func (f DocFrame) withDefaults() DocFrame {
	if f.PxPerUnit <= 0 {
		f.PxPerUnit = 1
	}
	return f
}

func (f DocFrame) point(p engrave.Pair) (float64, float64) {
	y := p.Y()
	if f.FlipY {
		y = f.Height - y
	}
	return p.X() / f.PxPerUnit, y / f.PxPerUnit
}

// Normalize maps a drawing point into upright document units:
// coordinates are divided by PxPerUnit, and with FlipY the vertical axis
// is flipped against Height so that y grows away from the document's
// bottom edge. Calibration drawing coordinates are expected in this
// normalized frame.
func (f DocFrame) Normalize(p engrave.Pair) engrave.Pair {
	f = f.withDefaults()
	x, y := f.point(p)
	return engrave.P(x, y)
}

func (f DocFrame) offset(o engrave.Pair) (float64, float64) {
	j := o.Y()
	if f.FlipY {
		j = -j
	}
	return o.X() / f.PxPerUnit, j / f.PxPerUnit
}

// Render serializes a motion sequence to G-code lines in the given
// serialization frame. Arc feed rates are carried in the motion model but
// not serialized; controllers take the modal feed from the preceding
// linear move.
func (g *Generator) Render(motions []Motion, frame DocFrame) []string {
	frame = frame.withDefaults()
	g.Reset()
	lines := make([]string, 0, len(motions))
	for _, m := range motions {
		switch m.Kind {
		case MotionRapid:
			x, y := frame.point(m.Target)
			lines = append(lines, g.MoveTo(x, y))
		case MotionLinear:
			x, y := frame.point(m.Target)
			lines = append(lines, g.LineTo(x, y, m.Feed))
		case MotionArc:
			x, y := frame.point(m.Target)
			i, j := frame.offset(m.CenterOff)
			lines = append(lines, g.ArcTo(x, y, i, j, m.Clockwise, 0))
		case MotionToolOn:
			lines = append(lines, g.ToolOn(m.Power))
		case MotionToolOff:
			lines = append(lines, g.ToolOff())
		}
	}
	return lines
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
