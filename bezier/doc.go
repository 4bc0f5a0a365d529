// Package bezier models cubic Bézier path segments and approximates them
// with motion-friendly primitives.
/*

A Segment is one independent cubic Bézier (start point, two control points,
end point). Subpaths chain segments through anchor points, each anchor
carrying an incoming and an outgoing control handle, the way cubic
"super paths" are modelled by vector drawing tools.

The package derives the usual differential-geometry quantities from a
segment (position, tangent, normal, curvature, arc length) and offers two
ways of reducing a segment to primitives a motion controller understands:

Flatten samples the segment at uniform parameter steps and yields straight
line primitives only. Quality is solely a function of the sample count.

Approximate fits pairs of circular arcs (biarcs) against the segment,
recursively subdividing where no valid pair exists, down to a configurable
depth. Arcs carry their center and signed sweep angle; a negative sweep
means clockwise rotation.

All operations are total: degenerate geometry (coincident control points,
zero-length chords, parallel tangents, exhausted recursion depth) resolves
to documented fallback primitives rather than errors.
*/
package bezier
