package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/clipforge/internal/clip"
	"github.com/ivlev/clipforge/internal/compose"
	"github.com/ivlev/clipforge/internal/scene"
	"github.com/ivlev/clipforge/internal/system"
	"github.com/ivlev/clipforge/internal/video"
)

func main() {
	scenePtr := flag.String("scene", "", "Scene file (default: latest .yaml in scenes/)")
	outputPtr := flag.String("output", "", "Output video path (default: generated under output/)")
	fpsPtr := flag.Float64("fps", 30, "Output frame rate")
	widthPtr := flag.Int("width", 0, "Override the scene canvas width")
	heightPtr := flag.Int("height", 0, "Override the scene canvas height")
	durationPtr := flag.Float64("duration", 0, "Override the scene duration (seconds)")
	audioPtr := flag.String("audio", "", "Audio file to mux (overrides the scene's)")
	qrPtr := flag.String("qr", "", "URL to overlay as a QR code in the bottom-right corner")
	framesPtr := flag.String("frames", "", "Write an image sequence instead, e.g. frames/%04d.png")
	workersPtr := flag.Int("workers", system.RenderWorkers(), "Parallel writers for -frames")
	codecPtr := flag.String("codec", "", "Video codec (default: by output extension)")
	qualityPtr := flag.Int("quality", 23, "CRF quality for libx264")
	verbosePtr := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log := logrus.New()
	if *verbosePtr {
		log.SetLevel(logrus.DebugLevel)
	}

	scenePath := *scenePtr
	if scenePath == "" {
		latest, err := system.FindLatestScene("scenes")
		if err != nil {
			log.Fatalf("no scene: %v (put a scene file in scenes/ or pass -scene)", err)
		}
		scenePath = latest
		log.Infof("using scene %s", scenePath)
	}

	s, err := scene.Read(scenePath)
	if err != nil {
		log.Fatalf("read scene: %v", err)
	}
	if *widthPtr > 0 {
		s.Width = *widthPtr
	}
	if *heightPtr > 0 {
		s.Height = *heightPtr
	}

	c, err := scene.Build(s)
	if err != nil {
		log.Fatalf("build scene: %v", err)
	}

	if *qrPtr != "" {
		c, err = overlayQR(c, *qrPtr)
		if err != nil {
			log.Fatalf("qr overlay: %v", err)
		}
	}

	if *durationPtr > 0 {
		c = c.WithDuration(*durationPtr)
	}
	if c.Duration < 0 {
		log.Fatal("scene has no duration; set one in the scene file or pass -duration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	progress := video.NewLogProgress(log)

	if *framesPtr != "" {
		if _, err := video.WriteImageSequence(ctx, c, *framesPtr, *fpsPtr, *workersPtr, true, progress); err != nil {
			log.Fatalf("write frames: %v", err)
		}
		return
	}

	output := *outputPtr
	if output == "" {
		base := filepath.Base(scenePath)
		name := base[:len(base)-len(filepath.Ext(base))]
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		output = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", name, timestamp))
		os.MkdirAll("output", 0755)
	}

	writer := &video.FFmpegWriter{}
	err = writer.WriteVideo(ctx, c, output, video.WriteOptions{
		FPS:       *fpsPtr,
		Codec:     *codecPtr,
		Quality:   *qualityPtr,
		AudioPath: *audioPtr,
		Progress:  progress,
	})
	if err != nil {
		log.Fatalf("write video: %v", err)
	}
	log.Infof("done: %s", output)
}

// overlayQR stacks a semi-transparent QR code over the clip's
// bottom-right corner, sized to a fifth of the canvas width.
func overlayQR(c *clip.Clip, url string) (*clip.Clip, error) {
	size := c.W / 5
	if size < 64 {
		size = 64
	}
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	overlay := clip.FromImage(qr.Image(size), false, c.Duration).
		WithOpacity(0.4).
		WithPosition(clip.Anchored(clip.Right, clip.Bottom)).
		WithLayer(1)

	return compose.Composite([]*clip.Clip{c, overlay}, compose.Options{
		Width:  c.W,
		Height: c.H,
	})
}
