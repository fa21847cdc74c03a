package compose

import (
	"math"
	"testing"

	"github.com/ivlev/clipforge/internal/clip"
	"github.com/ivlev/clipforge/internal/raster"
)

func TestBlitOnNoMaskEqualsOpaqueMask(t *testing.T) {
	bg := raster.Solid(4, 4, 0, 0, 0)

	plain := clip.NewColor(2, 2, 200, 0, 0, 1).WithPosition(clip.At(1, 1))
	masked := plain.WithAddedMask()

	a := BlitOn(plain, bg, 0)
	b := BlitOn(masked, bg, 0)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("Pixel %d differs: no-mask %v, opaque-mask %v", i, a.Pix[i], b.Pix[i])
		}
	}
	if a.At(1, 1, 0) != 200 {
		t.Errorf("Expected 200 at (1,1), got %v", a.At(1, 1, 0))
	}
	if a.At(0, 0, 0) != 0 {
		t.Errorf("Expected untouched background at (0,0), got %v", a.At(0, 0, 0))
	}
}

func TestBlitDoesNotMutateBackground(t *testing.T) {
	bg := raster.Solid(4, 4, 5, 5, 5)
	c := clip.NewColor(4, 4, 250, 0, 0, 1)

	BlitOn(c, bg, 0)
	if bg.At(0, 0, 0) != 5 {
		t.Errorf("Background was mutated: got %v", bg.At(0, 0, 0))
	}
}

func TestResolvePositionAnchors(t *testing.T) {
	tests := []struct {
		name     string
		pos      clip.Position
		relative bool
		x, y     int
	}{
		{"top left", clip.Anchored(clip.Left, clip.Top), false, 0, 0},
		{"bottom right", clip.Anchored(clip.Right, clip.Bottom), false, 6, 6},
		{"center", clip.Anchored(clip.Center, clip.Center), false, 3, 3},
		{"absolute", clip.At(2.9, 1.2), false, 2, 1},
		{"relative", clip.At(0.5, 0.25), true, 5, 2},
		{"mixed", clip.Position{X: clip.Coord{Anchor: clip.Center}, Y: clip.Coord{Offset: 3}}, false, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ResolvePosition(tt.pos, tt.relative, 10, 8, 4, 2)
			if x != tt.x || y != tt.y {
				t.Errorf("Expected (%d,%d), got (%d,%d)", tt.x, tt.y, x, y)
			}
		})
	}
}

func TestBlitClipsOutOfBounds(t *testing.T) {
	bg := raster.Solid(4, 4, 0, 0, 0)
	c := clip.NewColor(3, 3, 100, 0, 0, 1).WithPosition(clip.At(2, 2))

	out := BlitOn(c, bg, 0)
	if out.W != 4 || out.H != 4 {
		t.Fatalf("Expected background size 4x4, got %dx%d", out.W, out.H)
	}
	if out.At(3, 3, 0) != 100 {
		t.Errorf("Expected 100 at (3,3), got %v", out.At(3, 3, 0))
	}
	if out.At(1, 1, 0) != 0 {
		t.Errorf("Expected 0 at (1,1), got %v", out.At(1, 1, 0))
	}

	neg := clip.NewColor(3, 3, 100, 0, 0, 1).WithPosition(clip.At(-2, -2))
	out = BlitOn(neg, bg, 0)
	if out.At(0, 0, 0) != 100 {
		t.Errorf("Expected 100 at (0,0), got %v", out.At(0, 0, 0))
	}
	if out.At(2, 2, 0) != 0 {
		t.Errorf("Expected 0 at (2,2), got %v", out.At(2, 2, 0))
	}
}

func TestBlitHalfOpacity(t *testing.T) {
	bg := raster.Solid(2, 2, 100, 0, 0)
	c := clip.NewColor(2, 2, 200, 0, 0, 1).WithOpacity(0.5)

	out := BlitOn(c, bg, 0)
	// 200*0.5 + 100*0.5
	if math.Abs(out.At(0, 0, 0)-150) > 1e-9 {
		t.Errorf("Expected 150, got %v", out.At(0, 0, 0))
	}
}

func TestBlitReconcilesImageAndMaskSizes(t *testing.T) {
	bg := raster.Solid(5, 5, 0, 0, 0)

	c := clip.NewColor(2, 3, 200, 0, 0, 1)
	c = c.WithMask(clip.NewColorMask(3, 2, 1.0, 1))

	out := BlitOn(c, bg, 0)
	// inside both image and mask
	if out.At(1, 1, 0) != 200 {
		t.Errorf("Expected 200 at (1,1), got %v", out.At(1, 1, 0))
	}
	// image padding is black but opaque under the mask's first row
	if out.At(2, 0, 0) != 0 {
		t.Errorf("Expected black padding at (2,0), got %v", out.At(2, 0, 0))
	}
	// mask padding is transparent: the image's third row does not show
	if out.At(0, 2, 0) != 0 {
		t.Errorf("Expected transparent at (0,2), got %v", out.At(0, 2, 0))
	}
}

func TestCoerce8(t *testing.T) {
	f := raster.Solid(1, 1, -20, 300, 10.6)
	out := coerce8(f)
	if out.At(0, 0, 0) != 0 || out.At(0, 0, 1) != 255 || out.At(0, 0, 2) != 11 {
		t.Errorf("Expected (0,255,11), got (%v,%v,%v)",
			out.At(0, 0, 0), out.At(0, 0, 1), out.At(0, 0, 2))
	}

	mask := raster.SolidGray(1, 1, 0.37)
	if coerce8(mask).At(0, 0, 0) != 0.37 {
		t.Errorf("Masks must pass through untouched, got %v", coerce8(mask).At(0, 0, 0))
	}
}
