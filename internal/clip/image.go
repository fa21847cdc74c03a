package clip

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/ivlev/clipforge/internal/raster"
)

// FromFrame builds a static clip displaying the given frame at all times.
// A 3-channel frame used as a mask has its red channel extracted and
// normalized.
func FromFrame(f *raster.Frame, isMask bool, duration float64) *Clip {
	if isMask && f.Channels != 1 {
		f = f.Channel(0)
	}
	img := f
	c := New(func(t float64) *raster.Frame { return img }, isMask, duration, true)
	c.img = img
	return c
}

// FromImage builds a static clip from a decoded image. When transparent is
// true and the image carries a non-trivial alpha channel, the alpha
// becomes the clip's mask.
func FromImage(src image.Image, transparent bool, duration float64) *Clip {
	c := FromFrame(raster.FromImage(src), false, duration)
	if transparent {
		if alpha := raster.AlphaFromImage(src); alpha != nil {
			c.Mask = FromFrame(alpha, true, duration)
		}
	}
	return c
}

// FromFile decodes a png or jpeg file into a static clip. I/O and decode
// failures surface unwrapped beyond the path annotation; this layer owns
// no retry policy.
func FromFile(path string, transparent bool, duration float64) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(src, transparent, duration), nil
}

// NewColor builds a static clip of a single RGB color.
func NewColor(w, h int, r, g, b uint8, duration float64) *Clip {
	return FromFrame(raster.Solid(w, h, float64(r), float64(g), float64(b)), false, duration)
}

// NewColorMask builds a static mask clip of a single opacity value in 0..1.
func NewColorMask(w, h int, v float64, duration float64) *Clip {
	return FromFrame(raster.SolidGray(w, h, v), true, duration)
}
