package clip

import "github.com/ivlev/clipforge/internal/raster"

// NewData builds a clip whose successive frames are functions of
// successive data records: the frame at t is toFrame(records[floor(fps*t)]).
// Indices beyond the record list are undefined; callers must respect the
// derived duration len(records)/fps.
func NewData[T any](records []T, toFrame func(T) *raster.Frame, fps float64, isMask bool) *Clip {
	c := New(func(t float64) *raster.Frame {
		return toFrame(records[int(fps*t)])
	}, isMask, float64(len(records))/fps, true)
	c.FPS = fps
	return c
}
