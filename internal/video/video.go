// Package video is the export boundary: it enumerates (timestamp, raster)
// pairs from a clip and hands them to an external ffmpeg process, or
// writes them out as still images.
package video

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivlev/clipforge/internal/clip"
)

// codecs by output extension, overridable per write.
var defaultCodecs = map[string]string{
	".mp4":  "libx264",
	".avi":  "rawvideo",
	".ogv":  "libvorbis",
	".webm": "libvpx",
}

// WriteOptions configures a video export.
type WriteOptions struct {
	FPS       float64
	Codec     string // empty picks by extension
	Quality   int    // CRF for libx264, 0 for the encoder default
	Preset    string // libx264 preset, default "medium"
	AudioPath string // extra encoded audio to mux; clip audio used when empty
	Progress  Progress
}

// FFmpegWriter streams raw RGBA frames to an ffmpeg process over stdin.
type FFmpegWriter struct{}

// WriteVideo renders c at timestamps 0, 1/fps, 2/fps, ... < duration and
// encodes them into path. The clip must have a defined duration. A nonzero
// ffmpeg exit surfaces as a single terminal error carrying the process
// log; no partial output is guaranteed valid.
func (w *FFmpegWriter) WriteVideo(ctx context.Context, c *clip.Clip, path string, opts WriteOptions) error {
	if c.Duration < 0 {
		return fmt.Errorf("clip has no duration; set one before writing")
	}
	if opts.FPS <= 0 {
		if c.FPS <= 0 {
			return fmt.Errorf("no fps given and the clip has no native frame rate")
		}
		opts.FPS = c.FPS
	}

	codec := opts.Codec
	if codec == "" {
		ext := strings.ToLower(filepath.Ext(path))
		codec = defaultCodecs[ext]
		if codec == "" {
			return fmt.Errorf("no codec associated with %q; set one explicitly", ext)
		}
	}

	progress := opts.Progress
	if progress == nil {
		progress = NopProgress{}
	}

	audioPath := opts.AudioPath
	if audioPath == "" && c.Audio != nil {
		audioPath = c.Audio.Path
	}

	// Masks export as greyscale video.
	if c.IsMask {
		c = c.ToRGB()
	}

	args := buildArgs(c.W, c.H, path, codec, audioPath, opts)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var log strings.Builder
	cmd.Stdout = &log
	cmd.Stderr = &log

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	n := frameCount(c.Duration, opts.FPS)
	progress.Start(fmt.Sprintf("clipforge - building video %s", path), n)

	writeErr := func() error {
		defer stdin.Close()
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := float64(i) / opts.FPS
			frame := c.Frame(t).ToRGBA(nil)
			if err := writeRawRGBA(stdin, frame, c.W, c.H); err != nil {
				return fmt.Errorf("write frame %d: %w", i, err)
			}
			progress.Step()
		}
		return nil
	}()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg error: %v\nlog: %s", err, log.String())
	}
	if writeErr != nil {
		return writeErr
	}
	progress.Message(fmt.Sprintf("clipforge - video ready %s", path))
	return nil
}

func buildArgs(w, h int, path, codec, audioPath string, opts WriteOptions) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", w, h),
		"-framerate", fmt.Sprintf("%f", opts.FPS),
		"-i", "-",
	}
	if audioPath != "" {
		args = append(args, "-i", audioPath, "-c:a", "aac", "-shortest")
	}
	args = append(args,
		"-r", fmt.Sprintf("%f", opts.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", codec,
	)
	if codec == "libx264" {
		preset := opts.Preset
		if preset == "" {
			preset = "medium"
		}
		args = append(args, "-preset", preset)
		if opts.Quality > 0 {
			args = append(args, "-crf", fmt.Sprintf("%d", opts.Quality))
		}
	}
	return append(args, path)
}

// frameCount returns how many timestamps 0, 1/fps, ... lie strictly
// below duration, guarding against float accumulation at the boundary.
func frameCount(duration, fps float64) int {
	n := int(duration * fps)
	if float64(n)/fps < duration-1e-9 {
		n++
	}
	return n
}

func writeRawRGBA(w io.Writer, img *image.RGBA, width, height int) error {
	if img.Stride != width*4 || img.Rect.Dx() != width || img.Rect.Dy() != height {
		// Frame size drifted from the declared clip size; repack onto
		// the declared raster so the rawvideo stream stays aligned.
		fixed := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(fixed, fixed.Bounds(), img, img.Rect.Min, draw.Src)
		img = fixed
	}
	_, err := w.Write(img.Pix)
	return err
}
