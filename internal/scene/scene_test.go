package scene

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	s := &Scene{
		Version:    "1.0",
		Width:      640,
		Height:     360,
		FPS:        25,
		Duration:   8,
		Background: [3]uint8{10, 20, 30},
		Layers: []Layer{
			{Type: "color", Color: [3]uint8{255, 0, 0}, Duration: 4},
			{
				Type:     "text",
				Text:     "Title",
				FontSize: 32,
				Start:    1,
				Position: []string{"center", "center"},
				Keyframes: []Keyframe{
					{Time: 0, X: 0, Y: 0},
					{Time: 2, X: 100, Y: 50},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := Write(s, path); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Failed to read scene: %v", err)
	}

	if got.Width != 640 || got.Height != 360 {
		t.Errorf("Expected 640x360, got %dx%d", got.Width, got.Height)
	}
	if got.Background != s.Background {
		t.Errorf("Expected background %v, got %v", s.Background, got.Background)
	}
	if len(got.Layers) != 2 {
		t.Fatalf("Expected 2 layers, got %d", len(got.Layers))
	}
	if got.Layers[0].Type != "color" || got.Layers[0].Duration != 4 {
		t.Errorf("First layer mismatch: %+v", got.Layers[0])
	}
	if len(got.Layers[1].Keyframes) != 2 || got.Layers[1].Keyframes[1].X != 100 {
		t.Errorf("Keyframes mismatch: %+v", got.Layers[1].Keyframes)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read("no/such/scene.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestInterpolate(t *testing.T) {
	keyframes := []Keyframe{
		{Time: 0, X: 0, Y: 0},
		{Time: 2, X: 100, Y: 200},
		{Time: 4, X: 100, Y: 0},
	}

	tests := []struct {
		name string
		t    float64
		x, y float64
	}{
		{"before first", -1, 0, 0},
		{"at first", 0, 0, 0},
		{"midpoint eases to half", 1, 50, 100},
		{"at keyframe", 2, 100, 200},
		{"after last", 10, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := interpolate(keyframes, tt.t)
			if math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 {
				t.Errorf("Expected (%v,%v), got (%v,%v)", tt.x, tt.y, x, y)
			}
		})
	}
}

func TestInterpolateEasingIsSmooth(t *testing.T) {
	keyframes := []Keyframe{{Time: 0, X: 0}, {Time: 1, X: 100}}

	// cubic in-out starts slower than linear
	x, _ := interpolate(keyframes, 0.25)
	if x >= 25 {
		t.Errorf("Expected eased value below linear 25, got %v", x)
	}
	x, _ = interpolate(keyframes, 0.75)
	if x <= 75 {
		t.Errorf("Expected eased value above linear 75, got %v", x)
	}
}

func TestBuildColorScene(t *testing.T) {
	s := &Scene{
		Width:    8,
		Height:   6,
		Duration: 2,
		Layers: []Layer{
			{Type: "color", Color: [3]uint8{0, 0, 255}},
			{Type: "color", Color: [3]uint8{255, 0, 0}, Start: 1, Duration: 1, Index: 1},
		},
	}

	c, err := Build(s)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if c.W != 8 || c.H != 6 {
		t.Fatalf("Expected 8x6, got %dx%d", c.W, c.H)
	}
	if math.Abs(c.Duration-2) > 1e-9 {
		t.Errorf("Expected duration 2, got %v", c.Duration)
	}
	if c.Frame(0.5).At(0, 0, 2) != 255 {
		t.Errorf("Expected blue before the overlay starts, got %v", c.Frame(0.5).At(0, 0, 2))
	}
	if c.Frame(1.5).At(0, 0, 0) != 255 {
		t.Errorf("Expected red while the overlay plays, got %v", c.Frame(1.5).At(0, 0, 0))
	}
}

func TestBuildImageLayerWithPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dot.png")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 255, 0, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode image: %v", err)
	}
	f.Close()

	s := &Scene{
		Width:    6,
		Height:   6,
		Duration: 1,
		Layers: []Layer{
			{Type: "color", Color: [3]uint8{0, 0, 0}},
			{Type: "image", Source: path, Position: []string{"right", "bottom"}, Index: 1},
		},
	}

	c, err := Build(s)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	frame := c.Frame(0.5)
	if frame.At(5, 5, 1) != 255 {
		t.Errorf("Expected the image in the bottom-right corner, got %v", frame.At(5, 5, 1))
	}
	if frame.At(0, 0, 1) != 0 {
		t.Errorf("Expected background in the top-left corner, got %v", frame.At(0, 0, 1))
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name string
		s    *Scene
	}{
		{"no canvas", &Scene{Layers: []Layer{{Type: "color"}}}},
		{"no layers", &Scene{Width: 10, Height: 10}},
		{"unknown type", &Scene{Width: 10, Height: 10, Duration: 1,
			Layers: []Layer{{Type: "hologram"}}}},
		{"bad position", &Scene{Width: 10, Height: 10, Duration: 1,
			Layers: []Layer{{Type: "color", Position: []string{"left"}}}}},
		{"bad position value", &Scene{Width: 10, Height: 10, Duration: 1,
			Layers: []Layer{{Type: "color", Position: []string{"left", "nowhere"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.s); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	pos, err := parsePosition([]string{"center", "10.5"})
	if err != nil {
		t.Fatalf("parsePosition failed: %v", err)
	}
	if pos.X.Anchor != "center" {
		t.Errorf("Expected center anchor, got %q", pos.X.Anchor)
	}
	if pos.Y.Offset != 10.5 {
		t.Errorf("Expected offset 10.5, got %v", pos.Y.Offset)
	}
}
