package compose

import (
	"fmt"
	"sort"

	"github.com/ivlev/clipforge/internal/clip"
	"github.com/ivlev/clipforge/internal/raster"
)

// Options configures a composite clip.
type Options struct {
	Width, Height int      // canvas size; zero means the first clip's size
	Background    [3]uint8 // canvas color under the clips
	Transparent   bool     // build a composite mask from the clips' masks
}

// Composite overlays clips on a colored canvas. At each time t the clips
// playing at t are blitted in ascending layer order (ties keep the given
// list order), so higher layers occlude lower ones where their masks are
// opaque. The duration is the latest clip end, unbounded if any playing
// clip is unbounded.
func Composite(clips []*clip.Clip, opts Options) (*clip.Clip, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("composite needs at least one clip")
	}

	w, h := opts.Width, opts.Height
	if w == 0 || h == 0 {
		w, h = clips[0].W, clips[0].H
	}

	ordered := make([]*clip.Clip, len(clips))
	copy(ordered, clips)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Layer < ordered[j].Layer
	})

	duration := 0.0
	for _, c := range clips {
		if c.Duration < 0 {
			duration = clip.Unbounded
			break
		}
		if c.End > duration {
			duration = c.End
		}
	}

	r := float64(opts.Background[0])
	g := float64(opts.Background[1])
	b := float64(opts.Background[2])

	out := clip.New(func(t float64) *raster.Frame {
		frame := raster.Solid(w, h, r, g, b)
		for _, c := range ordered {
			if playing(c, t) {
				frame = BlitOn(c, frame, t)
			}
		}
		return frame
	}, false, duration, true)

	if opts.Transparent {
		out = out.WithMask(compositeMask(ordered, w, h, duration))
	}
	return out, nil
}

func playing(c *clip.Clip, t float64) bool {
	if t < c.Start {
		return false
	}
	return c.Duration < 0 || t < c.End
}

// compositeMask accumulates the clips' opacities on a fully transparent
// canvas: each clip contributes an all-ones frame blitted through its own
// mask at its own position, which yields a + bg*(1-a) per pixel.
func compositeMask(ordered []*clip.Clip, w, h int, duration float64) *clip.Clip {
	covers := make([]*clip.Clip, len(ordered))
	for i, c := range ordered {
		covers[i] = opacityCover(c)
	}
	return clip.New(func(t float64) *raster.Frame {
		frame := raster.NewGray(w, h)
		for i, c := range ordered {
			if playing(c, t) {
				frame = BlitOn(covers[i], frame, t)
			}
		}
		return frame
	}, true, duration, true)
}

// opacityCover builds a mask clip shaped like c whose image is all ones
// and whose mask is c's own mask, sharing c's position and timing.
func opacityCover(c *clip.Clip) *clip.Clip {
	frame := func(t float64) *raster.Frame {
		f := c.Frame(t)
		return raster.SolidGray(f.W, f.H, 1.0)
	}
	cover := clip.New(frame, true, c.Duration, c.ConstantSize)
	cover.Start = c.Start
	cover.End = c.End
	cover.Pos = c.Pos
	cover.RelativePos = c.RelativePos
	cover.Layer = c.Layer
	cover.Mask = c.Mask
	return cover
}
