package video

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/clipforge/internal/clip"
	"github.com/ivlev/clipforge/internal/raster"
)

// SaveFrame writes the clip's frame at time t to an image file. With
// withMask the clip's mask becomes the png alpha channel (jpeg has no
// alpha and ignores it).
func SaveFrame(c *clip.Clip, path string, t float64, withMask bool) error {
	frame := c.Frame(t)
	var mask *raster.Frame
	if withMask && c.Mask != nil {
		mask = c.Mask.Frame(t)
	}
	return writeImage(path, frame.ToRGBA(mask))
}

func writeImage(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, nil)
	default:
		return fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
}

// WriteImageSequence writes the clip as numbered image files, pattern
// being a Sprintf format with one integer verb ("frames/%04d.png").
// Frames are independent time samples, so they are written in parallel
// across workers — except that stepped-simulation clips have ordered side
// effects and must be written with workers = 1.
func WriteImageSequence(ctx context.Context, c *clip.Clip, pattern string, fps float64, workers int, withMask bool, progress Progress) ([]string, error) {
	if c.Duration < 0 {
		return nil, fmt.Errorf("clip has no duration; set one before writing")
	}
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %g", fps)
	}
	if workers < 1 {
		workers = 1
	}
	if progress == nil {
		progress = NopProgress{}
	}

	n := frameCount(c.Duration, fps)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf(pattern, i)
	}

	progress.Start(fmt.Sprintf("clipforge - writing frames %s", pattern), n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := SaveFrame(c, names[i], float64(i)/fps, withMask); err != nil {
				return err
			}
			progress.Step()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}
