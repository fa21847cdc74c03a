package clip

import "github.com/ivlev/clipforge/internal/raster"

// WithMask returns a copy with the given mask attached. The mask must be a
// mask-flagged clip (values in 0..1); nil removes the mask.
func (c *Clip) WithMask(mask *Clip) *Clip {
	out := c.Copy()
	out.Mask = mask
	return out
}

// WithAddedMask returns a copy carrying an explicit fully opaque mask. A
// clip without a mask is already defined to be fully opaque; the explicit
// mask trades memory for a uniform code path. For clips of constant size
// the mask is a solid static clip; otherwise it is recomputed per call,
// shaped like the queried frame.
func (c *Clip) WithAddedMask() *Clip {
	if c.ConstantSize {
		mask := NewColorMask(c.W, c.H, 1.0, c.Duration)
		return c.WithMask(mask)
	}
	frame := c.frame
	mask := New(func(t float64) *raster.Frame {
		f := frame(t)
		return raster.SolidGray(f.W, f.H, 1.0)
	}, true, c.Duration, false)
	return c.WithMask(mask)
}

// WithOpacity returns a semi-transparent copy: the mask's values are
// multiplied by alpha. A fully opaque mask is created first if absent.
func (c *Clip) WithOpacity(alpha float64) *Clip {
	out := c
	if out.Mask == nil {
		out = out.WithAddedMask()
	}
	out = out.Copy()
	out.Mask = out.Mask.ImageTransform(func(f *raster.Frame) *raster.Frame {
		return f.Scale(alpha)
	}, Propagate{})
	return out
}

// ToMask converts the clip into a mask clip by extracting one channel
// normalized to 0..1. Channel 0 (red) is the conventional choice.
func (c *Clip) ToMask(channel int) *Clip {
	if c.IsMask {
		return c
	}
	out := c.ImageTransform(func(f *raster.Frame) *raster.Frame {
		return f.Channel(channel)
	}, Propagate{})
	out.IsMask = true
	out.Audio = nil
	return out
}

// ToRGB converts a mask clip back into a regular clip, replicating the
// single channel into three channels scaled by 255.
func (c *Clip) ToRGB() *Clip {
	if !c.IsMask {
		return c
	}
	out := c.ImageTransform(func(f *raster.Frame) *raster.Frame {
		return f.Replicate()
	}, Propagate{})
	out.IsMask = false
	return out
}
