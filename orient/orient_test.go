package orient

import (
	"errors"
	"math"
	"testing"

	"github.com/engravetools/engrave"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseLabel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	x, y, z, err := ParseLabel("(100; 0; 0)")
	assert.NoError(t, err)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 0.0, z)

	x, y, z, err = ParseLabel("  (12.5;-3.25;0.5)  ")
	assert.NoError(t, err)
	assert.Equal(t, 12.5, x)
	assert.Equal(t, -3.25, y)
	assert.Equal(t, 0.5, z)
}

func TestParseLabelRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, label := range []string{"", "(1; 2)", "(1; 2; 3; 4)", "(a; b; c)", "1, 2, 3"} {
		_, _, _, err := ParseLabel(label)
		assert.True(t, errors.Is(err, ErrBadLabel), "label %q should be rejected", label)
	}
}

func TestLabelRoundtrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	label := FormatLabel(100, 0, 0)
	assert.Equal(t, "(100; 0; 0)", label)
	x, y, z, err := ParseLabel(label)
	assert.NoError(t, err)
	assert.Equal(t, [3]float64{100, 0, 0}, [3]float64{x, y, z})
}

func TestSolveScaleOnly(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Calibration{
		{Drawing: engrave.P(0, 0), Machine: engrave.P(0, 0)},
		{Drawing: engrave.P(100, 0), Machine: engrave.P(50, 0)},
	}
	s, err := c.Solve()
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, s.Scale, 1e-12)
	assert.InDelta(t, 0.0, s.Rotation, 1e-12)
	mapped := s.Apply(engrave.P(100, 0))
	assert.InDelta(t, 50.0, mapped.X(), 1e-9)
	assert.InDelta(t, 0.0, mapped.Y(), 1e-9)
}

func TestSolveWithRotation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// Drawing baseline points up, machine baseline points right: the
	// transform rotates by -90°.
	c := Calibration{
		{Drawing: engrave.P(0, 0), Machine: engrave.P(0, 0)},
		{Drawing: engrave.P(0, 100), Machine: engrave.P(100, 0)},
	}
	s, err := c.Solve()
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, s.Scale, 1e-12)
	assert.InDelta(t, -math.Pi/2, s.Rotation, 1e-12)
	mapped := s.Apply(engrave.P(0, 50))
	assert.InDelta(t, 50.0, mapped.X(), 1e-9)
	assert.InDelta(t, 0.0, mapped.Y(), 1e-9)
}

func TestSolveWithTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Calibration{
		{Drawing: engrave.P(10, 10), Machine: engrave.P(5, 0)},
		{Drawing: engrave.P(20, 10), Machine: engrave.P(15, 0)},
	}
	s, err := c.Solve()
	assert.NoError(t, err)
	mapped := s.Apply(engrave.P(10, 10))
	assert.InDelta(t, 5.0, mapped.X(), 1e-9)
	assert.InDelta(t, 0.0, mapped.Y(), 1e-9)
}

func TestSolveDegenerateBasis(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Calibration{
		{Drawing: engrave.P(3, 3), Machine: engrave.P(0, 0)},
		{Drawing: engrave.P(3, 3), Machine: engrave.P(100, 0)},
	}
	_, err := c.Solve()
	assert.True(t, errors.Is(err, ErrDegenerateBasis))
}

func TestSolvePointCount(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Calibration{{Drawing: engrave.P(0, 0)}}.Solve()
	assert.True(t, errors.Is(err, ErrBadPointCount))

	two := Calibration{
		{Drawing: engrave.P(0, 0), Machine: engrave.P(0, 0)},
		{Drawing: engrave.P(100, 0), Machine: engrave.P(50, 0)},
	}
	three := append(append(Calibration{}, two...),
		Correspondence{Drawing: engrave.P(0, 100), Machine: engrave.P(0, 50)})
	s2, err := two.Solve()
	assert.NoError(t, err)
	s3, err := three.Solve()
	assert.NoError(t, err)
	// The third correspondence is carried but never used by the solve.
	assert.Equal(t, s2, s3)

	four := append(append(Calibration{}, three...), Correspondence{})
	_, err = four.Solve()
	assert.True(t, errors.Is(err, ErrBadPointCount))
}

func TestDefaultCalibration(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := DefaultCalibration(100, 3.7795, 1052.36)
	assert.NoError(t, c.Validate())
	s, err := c.Solve()
	assert.NoError(t, err)
	// Bottom-left document corner maps to machine origin.
	origin := s.Apply(engrave.P(0, 1052.36))
	assert.InDelta(t, 0.0, origin.X(), 1e-9)
	assert.InDelta(t, 0.0, origin.Y(), 1e-9)
	// 100 document units along the baseline map to 100 machine units.
	ref := s.Apply(engrave.P(377.95, 1052.36))
	assert.InDelta(t, 100.0, ref.X(), 1e-9)
	assert.InDelta(t, 0.0, ref.Y(), 1e-9)
}
