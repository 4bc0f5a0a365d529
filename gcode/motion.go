package gcode

import (
	"github.com/engravetools/engrave"
	"github.com/engravetools/engrave/bezier"
)

// Mode selects how cubic segments are reduced to motion primitives.
type Mode int8

const (
	// ModePolyline samples each segment into a fixed number of chords.
	ModePolyline Mode = iota
	// ModeBiarc fits tangent continuous arc pairs, subdividing adaptively.
	ModeBiarc
)

// Defaults for unset emitter options.
const (
	DefaultFeed     = 30
	DefaultSegments = 24
)

// Options configures motion emission.
type Options struct {
	Mode     Mode
	Segments int     // chords per segment in polyline mode
	Depth    int     // maximum subdivision depth in biarc mode
	Feed     float64 // engraving feed rate
	Power    int     // tool power, 0 leaves the power word out
}

func (o Options) withDefaults() Options {
	if o.Segments < 1 {
		o.Segments = DefaultSegments
	}
	if o.Depth == 0 {
		o.Depth = bezier.DefaultBiarcDepth
	}
	if o.Feed <= 0 {
		o.Feed = DefaultFeed
	}
	return o
}

// MotionKind discriminates motion primitives.
type MotionKind int8

const (
	// MotionRapid is a positioning move with the tool off.
	MotionRapid MotionKind = iota
	// MotionLinear is a straight engraving move.
	MotionLinear
	// MotionArc is a circular engraving move.
	MotionArc
	// MotionToolOn activates the tool.
	MotionToolOn
	// MotionToolOff deactivates the tool.
	MotionToolOff
)

// Motion is one machine-space motion primitive. Target and CenterOff are
// meaningful for moves only; CenterOff is the offset from the move's
// start point to the arc center.
type Motion struct {
	Kind      MotionKind
	Target    engrave.Pair
	CenterOff engrave.Pair
	Clockwise bool
	Feed      float64
	Power     int
}

// Emit translates machine-space subpaths into an ordered motion sequence.
//
// Every subpath becomes a rapid move to its start, tool-on, the engraving
// moves for its segments, and tool-off. Degenerate subpaths (fewer than 2
// anchors) are skipped entirely, without touching the tool. Emit is a
// pure function of its inputs; serialization state such as the axis-word
// cursor lives in the Generator.
func Emit(subpaths []*bezier.Subpath, opts Options) []Motion {
	opts = opts.withDefaults()
	var motions []Motion
	for _, sp := range subpaths {
		if sp.N() < 2 {
			tracer().Debugf("skipping degenerate subpath with %d anchors", sp.N())
			continue
		}
		motions = append(motions,
			Motion{Kind: MotionRapid, Target: sp.Anchor(0).Pt},
			Motion{Kind: MotionToolOn, Power: opts.Power})
		for _, seg := range sp.Segments() {
			var prims []bezier.Primitive
			if opts.Mode == ModeBiarc {
				prims = bezier.Approximate(seg, opts.Depth)
			} else {
				prims = bezier.Flatten(seg, opts.Segments)
			}
			for _, pr := range prims {
				switch pr.Kind {
				case bezier.KindLine:
					motions = append(motions, Motion{
						Kind:   MotionLinear,
						Target: pr.End,
						Feed:   opts.Feed,
					})
				case bezier.KindArc:
					motions = append(motions, Motion{
						Kind:      MotionArc,
						Target:    pr.End,
						CenterOff: pr.Center - pr.Start,
						Clockwise: pr.Angle < 0,
						Feed:      opts.Feed,
					})
				}
			}
		}
		motions = append(motions, Motion{Kind: MotionToolOff})
	}
	tracer().Infof("emitted %d motions for %d subpaths", len(motions), len(subpaths))
	return motions
}
