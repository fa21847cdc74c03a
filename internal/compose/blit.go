// Package compose implements the pixel-level blit algorithm and the
// composite/concatenated clips built on top of it.
package compose

import (
	"github.com/ivlev/clipforge/internal/clip"
	"github.com/ivlev/clipforge/internal/raster"
)

// BlitOn places c's frame at time t onto a copy of the background frame,
// honoring the clip's mask and position. The background frame is never
// mutated; the result is a new frame of the background's size. Foreground
// pixels falling outside the background are clipped silently.
//
// t is composition time; the clip's own frame is fetched at t - Start.
func BlitOn(c *clip.Clip, bg *raster.Frame, t float64) *raster.Frame {
	ct := t - c.Start

	img := coerce8(c.Frame(ct))

	var mask *raster.Frame
	if c.Mask != nil {
		mask = c.Mask.Frame(ct)

		// Differing image/mask sizes are reconciled, not rejected: both
		// are placed at the origin of a canvas of the element-wise
		// maximum size (image padded with black, mask with zero).
		if !raster.SameSize(img, mask) {
			w, h := img.W, img.H
			if mask.W > w {
				w = mask.W
			}
			if mask.H > h {
				h = mask.H
			}
			img = img.Expand(w, h)
			mask = mask.Expand(w, h)
		}
	}

	x, y := ResolvePosition(c.Pos(ct), c.RelativePos, bg.W, bg.H, img.W, img.H)
	return blit(img, mask, bg, x, y)
}

// ResolvePosition turns a position specification into integer pixel
// coordinates of the image's top-left corner on the background. Named
// anchors resolve independently per axis; with relative positioning,
// numeric components are fractions of the background dimensions. Final
// coordinates are truncated toward zero.
func ResolvePosition(pos clip.Position, relative bool, bgW, bgH, imgW, imgH int) (int, int) {
	return resolveAxis(pos.X, relative, bgW, imgW), resolveAxis(pos.Y, relative, bgH, imgH)
}

func resolveAxis(c clip.Coord, relative bool, bgDim, imgDim int) int {
	switch c.Anchor {
	case clip.Left, clip.Top:
		return 0
	case clip.Right, clip.Bottom:
		return bgDim - imgDim
	case clip.Center:
		return (bgDim - imgDim) / 2
	}
	v := c.Offset
	if relative {
		v *= float64(bgDim)
	}
	return int(v)
}

// blit alpha-composites img over a copy of bg at (x, y), with mask as
// per-pixel opacity (nil means fully opaque).
func blit(img, mask, bg *raster.Frame, x, y int) *raster.Frame {
	if img.Channels != bg.Channels {
		if bg.Channels == 1 {
			img = img.Channel(0)
		} else {
			img = img.Replicate()
		}
	}

	out := bg.Clone()
	ch := bg.Channels

	for iy := 0; iy < img.H; iy++ {
		oy := y + iy
		if oy < 0 || oy >= bg.H {
			continue
		}
		for ix := 0; ix < img.W; ix++ {
			ox := x + ix
			if ox < 0 || ox >= bg.W {
				continue
			}
			a := 1.0
			if mask != nil {
				a = mask.Pix[iy*mask.W+ix]
			}
			si := img.PixOffset(ix, iy)
			di := out.PixOffset(ox, oy)
			for k := 0; k < ch; k++ {
				out.Pix[di+k] = img.Pix[si+k]*a + out.Pix[di+k]*(1-a)
			}
		}
	}
	return out
}

// coerce8 clamps and rounds RGB values into 8-bit range, the integer
// coercion step of the blit contract. Mask frames pass through untouched;
// their arithmetic stays in normalized float space.
func coerce8(f *raster.Frame) *raster.Frame {
	if f.Channels == 1 {
		return f
	}
	return f.Map(func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		if v >= 255 {
			return 255
		}
		return float64(int(v + 0.5))
	})
}
