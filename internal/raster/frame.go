package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Frame is a W×H pixel raster with float64 channels. Regular frames have
// 3 channels holding RGB values in 0..255; mask frames have 1 channel
// holding normalized opacity in 0..1. Conversion to 8-bit integer space
// happens only at the ToRGBA boundary.
type Frame struct {
	W, H     int
	Channels int
	Pix      []float64 // row-major, interleaved channels
}

func NewRGB(w, h int) *Frame {
	return &Frame{W: w, H: h, Channels: 3, Pix: make([]float64, w*h*3)}
}

func NewGray(w, h int) *Frame {
	return &Frame{W: w, H: h, Channels: 1, Pix: make([]float64, w*h)}
}

// Solid returns a w×h RGB frame filled with one color.
func Solid(w, h int, r, g, b float64) *Frame {
	f := NewRGB(w, h)
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
	}
	return f
}

// SolidGray returns a w×h single-channel frame filled with value v.
func SolidGray(w, h int, v float64) *Frame {
	f := NewGray(w, h)
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

func (f *Frame) At(x, y, c int) float64 {
	return f.Pix[(y*f.W+x)*f.Channels+c]
}

func (f *Frame) Set(x, y, c int, v float64) {
	f.Pix[(y*f.W+x)*f.Channels+c] = v
}

func (f *Frame) Clone() *Frame {
	pix := make([]float64, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{W: f.W, H: f.H, Channels: f.Channels, Pix: pix}
}

// Map returns a new frame with fn applied to every sample.
func (f *Frame) Map(fn func(v float64) float64) *Frame {
	out := &Frame{W: f.W, H: f.H, Channels: f.Channels, Pix: make([]float64, len(f.Pix))}
	for i, v := range f.Pix {
		out.Pix[i] = fn(v)
	}
	return out
}

// Scale multiplies every sample by k.
func (f *Frame) Scale(k float64) *Frame {
	return f.Map(func(v float64) float64 { return v * k })
}

// Channel extracts channel c normalized to 0..1, producing a mask frame.
func (f *Frame) Channel(c int) *Frame {
	if f.Channels == 1 {
		return f.Clone()
	}
	out := NewGray(f.W, f.H)
	for i := 0; i < f.W*f.H; i++ {
		out.Pix[i] = f.Pix[i*f.Channels+c] / 255
	}
	return out
}

// Replicate turns a mask frame into an RGB frame, each channel 255× the
// normalized value.
func (f *Frame) Replicate() *Frame {
	if f.Channels == 3 {
		return f.Clone()
	}
	out := NewRGB(f.W, f.H)
	for i := 0; i < f.W*f.H; i++ {
		v := 255 * f.Pix[i]
		out.Pix[i*3] = v
		out.Pix[i*3+1] = v
		out.Pix[i*3+2] = v
	}
	return out
}

// Expand places the frame at the origin of a larger w×h canvas. RGB frames
// are padded with black, mask frames with zero opacity. Dimensions smaller
// than the frame's own are clamped up.
func (f *Frame) Expand(w, h int) *Frame {
	if w < f.W {
		w = f.W
	}
	if h < f.H {
		h = f.H
	}
	if w == f.W && h == f.H {
		return f
	}
	out := &Frame{W: w, H: h, Channels: f.Channels, Pix: make([]float64, w*h*f.Channels)}
	for y := 0; y < f.H; y++ {
		src := f.Pix[y*f.W*f.Channels : (y+1)*f.W*f.Channels]
		dst := out.Pix[y*w*f.Channels:]
		copy(dst, src)
	}
	return out
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// ToRGBA converts the frame to an 8-bit image. A mask frame is rendered as
// greyscale. If mask is non-nil its values become the alpha channel
// (premultiplied, per image.RGBA convention); otherwise the result is
// fully opaque.
func (f *Frame) ToRGBA(mask *Frame) *image.RGBA {
	src := f
	if f.Channels == 1 {
		src = f.Replicate()
	}
	img := image.NewRGBA(image.Rect(0, 0, src.W, src.H))
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			a := 1.0
			if mask != nil && x < mask.W && y < mask.H {
				a = mask.At(x, y, 0)
			}
			i := src.PixOffset(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: clamp8(src.Pix[i] * a),
				G: clamp8(src.Pix[i+1] * a),
				B: clamp8(src.Pix[i+2] * a),
				A: clamp8(a * 255),
			})
		}
	}
	return img
}

// PixOffset returns the index of the first channel of pixel (x, y).
func (f *Frame) PixOffset(x, y int) int {
	return (y*f.W + x) * f.Channels
}

// FromImage converts a decoded image into an RGB frame.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewRGB(b.Dx(), b.Dy())
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			c := rgba.RGBAAt(x+rgba.Rect.Min.X, y+rgba.Rect.Min.Y)
			i := f.PixOffset(x, y)
			f.Pix[i] = float64(c.R)
			f.Pix[i+1] = float64(c.G)
			f.Pix[i+2] = float64(c.B)
		}
	}
	return f
}

// AlphaFromImage extracts the alpha channel of an image as a mask frame.
// Returns nil when the image is fully opaque.
func AlphaFromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewGray(b.Dx(), b.Dy())
	opaque := true
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			v := float64(a) / 0xffff
			if v < 1 {
				opaque = false
			}
			f.Pix[y*f.W+x] = v
		}
	}
	if opaque {
		return nil
	}
	return f
}

// SameSize reports whether two frames have identical pixel dimensions.
func SameSize(a, b *Frame) bool {
	return a.W == b.W && a.H == b.H
}

func (f *Frame) String() string {
	return fmt.Sprintf("Frame(%dx%d, %dch)", f.W, f.H, f.Channels)
}
