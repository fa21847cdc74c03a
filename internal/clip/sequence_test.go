package clip

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ivlev/clipforge/internal/source"
)

// fakeSource serves solid 2x2 pages whose red channel encodes the page
// index, and counts renders to observe the memoization.
type fakeSource struct {
	pages   int
	renders int
	fail    map[int]bool
}

func (s *fakeSource) PageCount() int { return s.pages }

func (s *fakeSource) RenderPage(index int) (image.Image, error) {
	if s.fail[index] {
		return nil, fmt.Errorf("page %d unreadable", index)
	}
	s.renders++
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(index * 10), 0, 0, 255})
		}
	}
	return img, nil
}

func (s *fakeSource) Close() error { return nil }

var _ source.Source = (*fakeSource)(nil)

func TestFromSource(t *testing.T) {
	src := &fakeSource{pages: 3}
	c, err := FromSource(src, 2)
	if err != nil {
		t.Fatalf("FromSource failed: %v", err)
	}

	if math.Abs(c.Duration-1.5) > 1e-9 {
		t.Errorf("Expected duration 1.5, got %v", c.Duration)
	}
	if c.FPS != 2 {
		t.Errorf("Expected native fps 2, got %v", c.FPS)
	}
	if c.ConstantSize {
		t.Error("Expected a non-constant-size clip")
	}

	if got := c.Frame(0).At(0, 0, 0); got != 0 {
		t.Errorf("Expected page 0 at t=0, got red %v", got)
	}
	if got := c.Frame(0.75).At(0, 0, 0); got != 10 {
		t.Errorf("Expected page 1 at t=0.75, got red %v", got)
	}
	// past the end the last page holds
	if got := c.Frame(5).At(0, 0, 0); got != 20 {
		t.Errorf("Expected the last page past the end, got red %v", got)
	}
}

func TestFromSourceMemoizesLastPage(t *testing.T) {
	src := &fakeSource{pages: 2}
	c, err := FromSource(src, 1)
	if err != nil {
		t.Fatalf("FromSource failed: %v", err)
	}

	base := src.renders // page 0 rendered at construction
	c.Frame(0.1)
	c.Frame(0.2)
	c.Frame(0.3)
	if src.renders != base {
		t.Errorf("Expected repeated queries of one page to hit the memo, got %d extra renders", src.renders-base)
	}
	c.Frame(1.5)
	if src.renders != base+1 {
		t.Errorf("Expected exactly one render for the next page, got %d", src.renders-base)
	}
}

func TestFromSourceValidation(t *testing.T) {
	if _, err := FromSource(&fakeSource{pages: 0}, 1); err == nil {
		t.Error("Expected error for an empty source")
	}
	if _, err := FromSource(&fakeSource{pages: 1}, 0); err == nil {
		t.Error("Expected error for non-positive fps")
	}
	// an unreadable first page fails at construction, not at playback
	bad := &fakeSource{pages: 2, fail: map[int]bool{0: true}}
	if _, err := FromSource(bad, 1); err == nil {
		t.Error("Expected error for an unreadable first page")
	}
}
