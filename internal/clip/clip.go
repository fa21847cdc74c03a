// Package clip implements the lazily evaluated, time-indexed clip model.
// A clip is a function from a timestamp in seconds to a pixel frame, with
// optional mask, audio, position and layer attachments. Clips are immutable
// by convention: every operation returns a modified copy.
package clip

import (
	"github.com/ivlev/clipforge/internal/audio"
	"github.com/ivlev/clipforge/internal/raster"
)

// Unbounded marks a clip without a defined duration. Any negative duration
// is treated the same way.
const Unbounded = -1.0

// FrameFunc produces the frame at time t (seconds, t >= 0). Requesting a
// frame beyond the clip's duration is undefined unless the function is
// total over t >= 0.
type FrameFunc func(t float64) *raster.Frame

// Propagate names the companion attributes a transform also applies to.
// Audio is carried for symmetry with the clip model but audio internals
// are an external concern, so transforms leave the handle untouched.
type Propagate struct {
	Mask  bool
	Audio bool
}

// Clip is the central entity: a frame function plus duration, size, mask,
// audio, position and layer attachments.
type Clip struct {
	frame FrameFunc

	// img is non-nil for static clips, whose frame function ignores t.
	// Image-space transforms on a static clip are evaluated eagerly.
	img *raster.Frame

	Duration float64 // seconds; negative means unbounded
	Start    float64 // offset on the composition timeline
	End      float64 // Start + Duration when duration is defined

	W, H         int // computed from frame(0) at construction
	IsMask       bool
	ConstantSize bool

	Mask  *Clip
	Audio *audio.Clip

	Pos         PosFunc
	RelativePos bool
	Layer       int

	FPS float64 // native frame rate, when the source has one
}

// New builds a clip around a frame function. The size is computed once from
// frame(0) and cached; set constantSize to false for sources whose frame
// size varies over time.
func New(frame FrameFunc, isMask bool, duration float64, constantSize bool) *Clip {
	c := &Clip{
		frame:        frame,
		Duration:     Unbounded,
		IsMask:       isMask,
		ConstantSize: constantSize,
		Pos:          func(t float64) Position { return At(0, 0) },
	}
	if frame != nil {
		f := frame(0)
		c.W, c.H = f.W, f.H
	}
	if duration >= 0 {
		c.Duration = duration
		c.End = duration
	}
	return c
}

// Static reports whether the clip's frame function ignores t.
func (c *Clip) Static() bool { return c.img != nil }

// Img returns the precomputed frame of a static clip, nil otherwise.
func (c *Clip) Img() *raster.Frame { return c.img }

// Frame returns the frame at time t.
func (c *Clip) Frame(t float64) *raster.Frame {
	return c.frame(t)
}

// Copy returns a new clip sharing all attribute values except mask and
// audio, which are independently shallow-copied so that mutating the
// copy's companions never touches the original's.
func (c *Clip) Copy() *Clip {
	out := *c
	if c.Mask != nil {
		m := *c.Mask
		out.Mask = &m
	}
	if c.Audio != nil {
		a := *c.Audio
		out.Audio = &a
	}
	return &out
}

// Transform is the most general filter: the new clip's frame at t is
// fn(oldFrame, t). The result is dynamic even when the receiver was
// static, since fn may depend on t. When keepDuration is false the
// duration of the result is cleared.
func (c *Clip) Transform(fn func(frame FrameFunc, t float64) *raster.Frame, p Propagate, keepDuration bool) *Clip {
	out := c.Copy()
	old := c.frame
	out.frame = func(t float64) *raster.Frame { return fn(old, t) }
	out.img = nil
	if !keepDuration {
		out.Duration = Unbounded
		out.End = out.Start
	}
	if p.Mask && c.Mask != nil {
		out.Mask = c.Mask.Transform(fn, Propagate{}, keepDuration)
	}
	return out
}

// ImageTransform replaces every frame F(t) by fn(F(t)). On a static clip
// the transform is evaluated once, eagerly, and the result stays static.
func (c *Clip) ImageTransform(fn func(*raster.Frame) *raster.Frame, p Propagate) *Clip {
	if c.img != nil {
		out := c.Copy()
		img := fn(c.img)
		out.img = img
		out.W, out.H = img.W, img.H
		out.frame = func(t float64) *raster.Frame { return img }
		if p.Mask && c.Mask != nil {
			out.Mask = c.Mask.ImageTransform(fn, Propagate{})
		}
		return out
	}
	return c.Transform(func(frame FrameFunc, t float64) *raster.Frame {
		return fn(frame(t))
	}, p, true)
}

// TimeTransform replaces every frame F(t) by F(timeFn(t)). On a static
// clip the frame function is untouched (the result is the same for all t)
// but companions still receive the transform.
func (c *Clip) TimeTransform(timeFn func(t float64) float64, p Propagate, keepDuration bool) *Clip {
	if c.img != nil {
		out := c.Copy()
		if p.Mask && c.Mask != nil {
			out.Mask = c.Mask.TimeTransform(timeFn, Propagate{}, keepDuration)
		}
		return out
	}
	return c.Transform(func(frame FrameFunc, t float64) *raster.Frame {
		return frame(timeFn(t))
	}, p, keepDuration)
}

// WithDuration returns a copy with the given duration. The mask, if any,
// receives the same duration.
func (c *Clip) WithDuration(d float64) *Clip {
	out := c.Copy()
	out.Duration = d
	out.End = out.Start + d
	if out.Mask != nil {
		out.Mask = out.Mask.WithDuration(d)
	}
	return out
}

// WithStart returns a copy placed at time t on the composition timeline.
func (c *Clip) WithStart(t float64) *Clip {
	out := c.Copy()
	out.Start = t
	if out.Duration >= 0 {
		out.End = t + out.Duration
	}
	if out.Mask != nil {
		out.Mask = out.Mask.WithStart(t)
	}
	return out
}

// WithEnd returns a copy whose end is t; the start moves when a duration
// is defined.
func (c *Clip) WithEnd(t float64) *Clip {
	out := c.Copy()
	out.End = t
	if out.Duration >= 0 {
		out.Start = t - out.Duration
	}
	if out.Mask != nil {
		out.Mask = out.Mask.WithEnd(t)
	}
	return out
}

// Subclip returns the clip playing between start and end of the original
// timeline. A negative end counts back from the clip's duration; end 0
// with a duration defined means "until the end".
func (c *Clip) Subclip(start, end float64) *Clip {
	if end <= 0 && c.Duration >= 0 {
		end = c.Duration + end
	}
	out := c.TimeTransform(func(t float64) float64 { return t + start }, Propagate{Mask: true}, false)
	if end > start {
		out = out.WithDuration(end - start)
	}
	return out
}

// WithFrameFunc returns a copy with a new frame function; the size is
// recomputed from the new frame at t=0.
func (c *Clip) WithFrameFunc(frame FrameFunc) *Clip {
	out := c.Copy()
	out.frame = frame
	out.img = nil
	f := frame(0)
	out.W, out.H = f.W, f.H
	return out
}

// WithAudio returns a copy with the audio handle attached.
func (c *Clip) WithAudio(a *audio.Clip) *Clip {
	out := c.Copy()
	out.Audio = a
	return out
}

// WithoutAudio returns a copy with no audio.
func (c *Clip) WithoutAudio() *Clip {
	out := c.Copy()
	out.Audio = nil
	return out
}

// WithLayer sets the stacking order in compositions; higher layers draw
// on top.
func (c *Clip) WithLayer(layer int) *Clip {
	out := c.Copy()
	out.Layer = layer
	if out.Mask != nil {
		out.Mask = out.Mask.WithLayer(layer)
	}
	return out
}

// WithFPS returns a copy with the native frame rate set.
func (c *Clip) WithFPS(fps float64) *Clip {
	out := c.Copy()
	out.FPS = fps
	return out
}
