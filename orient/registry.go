package orient

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

// Registry resolves calibrations for named coordinate frames (layers).
//
// Frames form a tree through parent links. A frame without a directly
// attached calibration inherits the calibration of its nearest calibrated
// ancestor; a frame without calibration anywhere in its ancestry has no
// transform, and the caller decides the fallback policy. Solved
// transforms are memoized per queried frame, so repeated lookups are
// O(1); attaching a calibration re-opens the cache.
//
// A Registry is not safe for concurrent mutation. Populate it first,
// then share it read-only.
type Registry struct {
	parents      map[string]string
	calibrations map[string]Calibration
	cache        *treemap.Map // frame id -> Similarity
}

// NewRegistry creates an empty frame registry.
func NewRegistry() *Registry {
	return &Registry{
		parents:      make(map[string]string),
		calibrations: make(map[string]Calibration),
		cache:        treemap.NewWithStringComparator(),
	}
}

// AddFrame registers a frame below a parent frame. The empty parent id
// denotes a root frame.
func (r *Registry) AddFrame(id, parent string) {
	r.parents[id] = parent
}

// Attach binds a calibration to a frame, replacing any previous one.
// Frames are registered implicitly as roots if unknown. All memoized
// transforms are dropped: descendants may inherit the new calibration.
func (r *Registry) Attach(id string, c Calibration) {
	if _, known := r.parents[id]; !known {
		r.parents[id] = ""
	}
	r.calibrations[id] = c
	r.cache.Clear()
	tracer().Infof("calibration attached to frame %q", id)
}

// TransformFor resolves the similarity transform for a frame, walking up
// the ancestor chain to the nearest calibrated frame. The solved
// transform is memoized under the queried frame id. Returns
// ErrNoCalibration if neither the frame nor any ancestor is calibrated.
func (r *Registry) TransformFor(id string) (Similarity, error) {
	if cached, ok := r.cache.Get(id); ok {
		return cached.(Similarity), nil
	}
	seen := make(map[string]bool)
	for cur := id; !seen[cur]; {
		seen[cur] = true
		if c, ok := r.calibrations[cur]; ok {
			s, err := c.Solve()
			if err != nil {
				return Similarity{}, fmt.Errorf("frame %q: %w", cur, err)
			}
			r.cache.Put(id, s)
			tracer().Debugf("frame %q resolves to calibration of %q: %v", id, cur, s)
			return s, nil
		}
		parent, ok := r.parents[cur]
		if !ok || parent == "" {
			break
		}
		cur = parent
	}
	return Similarity{}, fmt.Errorf("frame %q: %w", id, ErrNoCalibration)
}

// Calibrated lists the frames with memoized transforms, in frame id
// order.
func (r *Registry) Calibrated() []string {
	keys := r.cache.Keys()
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.(string)
	}
	return ids
}
