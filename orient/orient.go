// Package orient calibrates drawing-space coordinates against
// machine-space coordinates.
/*

Machines are told where a drawing lives on their bed through orientation
points: marker pairs placed in the drawing, each labelled with the machine
position it corresponds to. From two such correspondences the package
solves a similarity transform (uniform scale, rotation, translation) that
maps any drawing point into machine space. A third correspondence is
accepted for compatibility with three-point marker sets but does not
participate in the solve.

Calibrations attach to named coordinate frames (layers). A Registry
resolves the transform for a frame, inheriting the calibration of the
nearest calibrated ancestor, and memoizes solved transforms per frame.
*/
package orient

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/engravetools/engrave"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'orient'
func tracer() tracing.Trace {
	return tracing.Select("orient")
}

// basisEps: drawing points closer than this cannot span a calibration basis.
const basisEps = 1e-6

var (
	// ErrBadPointCount indicates a calibration without 2 or 3 correspondences.
	ErrBadPointCount = errors.New("calibration needs 2 or 3 correspondences")
	// ErrDegenerateBasis indicates coinciding drawing-space reference points.
	ErrDegenerateBasis = errors.New("calibration reference points coincide")
	// ErrNoCalibration indicates a frame without calibration anywhere in its ancestry.
	ErrNoCalibration = errors.New("no calibration attached to frame or its ancestors")
	// ErrBadLabel indicates an orientation label that does not parse as "(x; y; z)".
	ErrBadLabel = errors.New("malformed orientation label")
)

// Correspondence pairs a drawing-space position with the machine-space
// position it represents. The machine z component is carried through for
// labeling only; the similarity solve ignores it.
type Correspondence struct {
	Drawing  engrave.Pair
	Machine  engrave.Pair
	MachineZ float64
}

// Calibration is an ordered set of 2 or 3 correspondences. Only the first
// two participate in the similarity solve; a third is accepted for
// compatibility with three-point orientation marker sets.
type Calibration []Correspondence

// Validate checks the correspondence count.
func (c Calibration) Validate() error {
	if len(c) < 2 || len(c) > 3 {
		return fmt.Errorf("%w: got %d", ErrBadPointCount, len(c))
	}
	return nil
}

// ParseLabel extracts the machine position from an orientation point
// label of the form "(x; y; z)", with semicolon-separated floats.
func ParseLabel(label string) (x, y, z float64, err error) {
	s := strings.TrimSpace(label)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	fields := strings.Split(s, ";")
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	coords := make([]float64, 3)
	for i, f := range fields {
		coords[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadLabel, label)
		}
	}
	return coords[0], coords[1], coords[2], nil
}

// FormatLabel renders a machine position as an orientation point label,
// the inverse of ParseLabel.
func FormatLabel(x, y, z float64) string {
	return fmt.Sprintf("(%g; %g; %g)", x, y, z)
}

// DefaultCalibration synthesizes the standard two-point calibration for
// documents without orientation markers: machine positions (0;0;0) and
// (spacing;0;0) on the drawing baseline. Drawing positions are scaled by
// pxPerUnit and flipped against the document height, so that the
// document's bottom-left corner maps to the machine origin.
func DefaultCalibration(spacing, pxPerUnit, docHeight float64) Calibration {
	tracer().Infof("synthesizing default calibration, spacing %g", spacing)
	return Calibration{
		{Drawing: engrave.P(0, docHeight), Machine: engrave.P(0, 0)},
		{Drawing: engrave.P(spacing*pxPerUnit, docHeight), Machine: engrave.P(spacing, 0)},
	}
}
