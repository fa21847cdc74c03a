package clip

import (
	"fmt"

	"github.com/ivlev/clipforge/internal/raster"
)

// DefaultColorMap is the built-in code -> RGB mapping for bitmap clips.
var DefaultColorMap = map[byte][3]uint8{
	'R': {255, 0, 0},
	'G': {0, 255, 0},
	'B': {0, 0, 255},
	'O': {0, 0, 0}, // "O" represents black
	'W': {255, 255, 255},
	'A': {89, 225, 62},
	'C': {113, 157, 108},
	'D': {215, 182, 143},
	'E': {57, 26, 252},
	'F': {225, 135, 33},
}

// Bitmap is a clip decoded from frames of single-character color codes,
// mainly useful for tests and tiny procedural animations.
type Bitmap struct {
	*Clip
	ColorMap map[byte][3]uint8

	frames []*raster.Frame
}

// NewBitmap decodes a sequence of frames, each a slice of equal-length
// rows of color codes. Exactly one of fps and duration must be positive;
// the other is derived from the frame count. A nil colorMap selects
// DefaultColorMap.
func NewBitmap(frames [][]string, fps, duration float64, colorMap map[byte][3]uint8, isMask bool) (*Bitmap, error) {
	if (fps > 0) == (duration > 0) {
		return nil, fmt.Errorf("exactly one of fps and duration must be given")
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("bitmap clip needs at least one frame")
	}
	if colorMap == nil {
		colorMap = DefaultColorMap
	}

	decoded := make([]*raster.Frame, len(frames))
	for i, rows := range frames {
		f, err := decodeBitmapFrame(rows, colorMap)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		decoded[i] = f
	}

	n := float64(len(decoded))
	if fps > 0 {
		duration = n / fps
	} else {
		fps = n / duration
	}

	c := New(func(t float64) *raster.Frame {
		return decoded[int(t*fps)]
	}, isMask, duration, true)
	c.FPS = fps

	return &Bitmap{Clip: c, ColorMap: colorMap, frames: decoded}, nil
}

func decodeBitmapFrame(rows []string, colorMap map[byte][3]uint8) (*raster.Frame, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty frame")
	}
	w, h := len(rows[0]), len(rows)
	f := raster.NewRGB(w, h)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d codes, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			rgb, ok := colorMap[row[x]]
			if !ok {
				return nil, fmt.Errorf("unknown color code %q", row[x])
			}
			i := f.PixOffset(x, y)
			f.Pix[i] = float64(rgb[0])
			f.Pix[i+1] = float64(rgb[1])
			f.Pix[i+2] = float64(rgb[2])
		}
	}
	return f, nil
}

// ToBitmap encodes the decoded frames back into rows of color codes,
// the inverse of NewBitmap. Colors absent from the map are an error.
func (b *Bitmap) ToBitmap() ([][]string, error) {
	reverse := make(map[[3]uint8]byte, len(b.ColorMap))
	for code, rgb := range b.ColorMap {
		reverse[rgb] = code
	}

	out := make([][]string, len(b.frames))
	for i, f := range b.frames {
		rows := make([]string, f.H)
		for y := 0; y < f.H; y++ {
			row := make([]byte, f.W)
			for x := 0; x < f.W; x++ {
				o := f.PixOffset(x, y)
				rgb := [3]uint8{uint8(f.Pix[o]), uint8(f.Pix[o+1]), uint8(f.Pix[o+2])}
				code, ok := reverse[rgb]
				if !ok {
					return nil, fmt.Errorf("frame %d: color %v has no code", i, rgb)
				}
				row[x] = code
			}
			rows[y] = string(row)
		}
		out[i] = rows
	}
	return out, nil
}
