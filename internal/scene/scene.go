// Package scene reads and writes YAML scene files and builds composed
// clips out of them. A scene is a canvas plus a list of layers (color,
// image, text, sequence, document), each with timing, position, opacity
// and stacking order.
package scene

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Scene is a complete composition description.
type Scene struct {
	Version    string   `yaml:"version"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	FPS        float64  `yaml:"fps"`
	Duration   float64  `yaml:"duration"` // seconds; 0 derives from layers
	Background [3]uint8 `yaml:"background,flow"`
	Audio      string   `yaml:"audio,omitempty"` // encoded audio file to mux
	Layers     []Layer  `yaml:"layers"`
}

// Layer is one clip of the composition.
type Layer struct {
	Type string `yaml:"type"` // color | image | text | sequence | document

	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"` // 0 inherits the scene duration
	Opacity  float64 `yaml:"opacity"`  // 0 or 1 means fully opaque
	Index    int     `yaml:"layer"`    // stacking order, higher on top

	Position  []string   `yaml:"position,flow,omitempty"` // [x, y]: anchor names or numbers
	Relative  bool       `yaml:"relative,omitempty"`      // numeric position as fraction of canvas
	Keyframes []Keyframe `yaml:"keyframes,omitempty"`     // animated position overrides Position

	// color layers
	Color [3]uint8 `yaml:"color,flow,omitempty"`

	// image / sequence / document layers
	Source string  `yaml:"source,omitempty"`
	FPS    float64 `yaml:"fps,omitempty"` // sequence page rate
	DPI    int     `yaml:"dpi,omitempty"` // document render resolution

	// text layers
	Text      string    `yaml:"text,omitempty"`
	Font      string    `yaml:"font,omitempty"`
	FontSize  int       `yaml:"font_size,omitempty"`
	Method    string    `yaml:"method,omitempty"` // label | caption
	TextColor [3]uint8  `yaml:"text_color,flow,omitempty"`
	BGColor   *[3]uint8 `yaml:"bg_color,flow,omitempty"`

	Width  int `yaml:"box_width,omitempty"`
	Height int `yaml:"box_height,omitempty"`
}

// Keyframe pins the layer's top-left corner at a moment of layer-local
// time; positions between keyframes are interpolated with smooth easing.
type Keyframe struct {
	Time float64 `yaml:"time"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Write marshals a scene to a YAML file.
func Write(s *Scene, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read unmarshals a scene from a YAML file.
func Read(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
