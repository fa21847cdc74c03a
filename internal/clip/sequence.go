package clip

import (
	"fmt"
	"sync"

	"github.com/ivlev/clipforge/internal/raster"
	"github.com/ivlev/clipforge/internal/source"
)

// FromSource builds a clip over a page-based source (image directory, PDF
// document), one page per 1/fps seconds. Pages are rendered on demand with
// the most recent page memoized; page 0 is rendered at construction, so an
// unreadable source fails early. A render failure at a later page
// surfaces as a panic, the same way a mid-render I/O failure aborts a
// frame computation everywhere else in the model.
func FromSource(src source.Source, fps float64) (*Clip, error) {
	n := src.PageCount()
	if n == 0 {
		return nil, fmt.Errorf("source has no pages")
	}
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %g", fps)
	}

	first, err := src.RenderPage(0)
	if err != nil {
		return nil, fmt.Errorf("render page 0: %w", err)
	}

	var mu sync.Mutex
	lastIndex := 0
	lastFrame := raster.FromImage(first)

	render := func(index int) *raster.Frame {
		mu.Lock()
		defer mu.Unlock()
		if index == lastIndex {
			return lastFrame
		}
		img, err := src.RenderPage(index)
		if err != nil {
			panic(fmt.Sprintf("render page %d: %v", index, err))
		}
		lastIndex, lastFrame = index, raster.FromImage(img)
		return lastFrame
	}

	// Page sizes may differ between pages (PDFs with mixed page sizes),
	// so the clip is declared non-constant-size.
	c := New(func(t float64) *raster.Frame {
		index := int(fps * t)
		if index >= n {
			index = n - 1
		}
		return render(index)
	}, false, float64(n)/fps, false)
	c.FPS = fps
	return c, nil
}
