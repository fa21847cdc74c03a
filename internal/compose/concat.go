package compose

import (
	"fmt"

	"github.com/ivlev/clipforge/internal/clip"
	"github.com/ivlev/clipforge/internal/raster"
)

// Concatenate plays clips one after another. Every clip must have a
// defined duration. Frames are passed through unscaled, so clips of
// different sizes yield a clip of varying frame size; the declared size
// is the element-wise maximum.
func Concatenate(clips []*clip.Clip) (*clip.Clip, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("concatenate needs at least one clip")
	}

	starts := make([]float64, len(clips)+1)
	for i, c := range clips {
		if c.Duration < 0 {
			return nil, fmt.Errorf("clip %d has no duration", i)
		}
		starts[i+1] = starts[i] + c.Duration
	}
	total := starts[len(clips)]

	locate := func(t float64) (int, float64) {
		for i := len(clips) - 1; i > 0; i-- {
			if t >= starts[i] {
				return i, t - starts[i]
			}
		}
		return 0, t
	}

	constant := true
	for _, c := range clips[1:] {
		if c.W != clips[0].W || c.H != clips[0].H {
			constant = false
		}
	}

	out := clip.New(func(t float64) *raster.Frame {
		i, local := locate(t)
		return clips[i].Frame(local)
	}, false, total, constant)

	hasMask := false
	for _, c := range clips {
		if c.Mask != nil {
			hasMask = true
			break
		}
	}
	if hasMask {
		// Clips without a mask contribute full opacity at their own size.
		out.Mask = clip.New(func(t float64) *raster.Frame {
			i, local := locate(t)
			if clips[i].Mask != nil {
				return clips[i].Mask.Frame(local)
			}
			f := clips[i].Frame(local)
			return raster.SolidGray(f.W, f.H, 1.0)
		}, true, total, constant)
	}
	return out, nil
}
