package clip

import "github.com/ivlev/clipforge/internal/raster"

// World is a stepped simulation rendered into frames. Update advances the
// simulation by one step, moving Time forward; Frame renders the current
// state.
type World interface {
	Time() float64
	Update()
	Frame() *raster.Frame
}

// NewStepped builds a clip over a mutable world. Computing the frame at t
// advances the world until its clock reaches or passes t, then renders.
//
// This is the one frame source with ordered side effects on every query:
// the clip must be sampled with non-decreasing t by a single caller, and
// re-querying an earlier t is unsupported. Batch writers must therefore
// not parallelize across timestamps for stepped clips.
func NewStepped(world World, isMask bool, duration float64) *Clip {
	return New(func(t float64) *raster.Frame {
		for world.Time() < t {
			world.Update()
		}
		return world.Frame()
	}, isMask, duration, true)
}
