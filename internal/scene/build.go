package scene

import (
	"fmt"
	"strconv"

	"github.com/ivlev/clipforge/internal/audio"
	"github.com/ivlev/clipforge/internal/clip"
	"github.com/ivlev/clipforge/internal/compose"
	"github.com/ivlev/clipforge/internal/source"
	"github.com/ivlev/clipforge/internal/text"
)

// Build composes a scene into a single clip.
func Build(s *Scene) (*clip.Clip, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("scene needs a positive canvas size, got %dx%d", s.Width, s.Height)
	}
	if len(s.Layers) == 0 {
		return nil, fmt.Errorf("scene has no layers")
	}

	clips := make([]*clip.Clip, 0, len(s.Layers))
	for i := range s.Layers {
		c, err := buildLayer(&s.Layers[i], s)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		clips = append(clips, c)
	}

	out, err := compose.Composite(clips, compose.Options{
		Width:      s.Width,
		Height:     s.Height,
		Background: s.Background,
	})
	if err != nil {
		return nil, err
	}
	if s.Duration > 0 {
		out = out.WithDuration(s.Duration)
	}
	if s.FPS > 0 {
		out = out.WithFPS(s.FPS)
	}
	if s.Audio != "" {
		a, err := audio.FromFile(s.Audio)
		if err != nil {
			return nil, err
		}
		out = out.WithAudio(a)
	}
	return out, nil
}

func buildLayer(l *Layer, s *Scene) (*clip.Clip, error) {
	duration := l.Duration
	if duration <= 0 {
		duration = s.Duration - l.Start
	}
	if duration <= 0 {
		duration = clip.Unbounded
	}

	var (
		c   *clip.Clip
		err error
	)
	switch l.Type {
	case "color":
		c = clip.NewColor(s.Width, s.Height, l.Color[0], l.Color[1], l.Color[2], duration)

	case "image":
		c, err = clip.FromFile(l.Source, true, duration)

	case "sequence":
		fps := l.FPS
		if fps <= 0 {
			fps = 1
		}
		var src *source.ImageSource
		src, err = source.NewImageSource(l.Source)
		if err == nil {
			c, err = clip.FromSource(src, fps)
		}

	case "document":
		fps := l.FPS
		if fps <= 0 {
			fps = 1
		}
		var src *source.FitzSource
		src, err = source.NewFitzSource(l.Source, l.DPI)
		if err == nil {
			c, err = clip.FromSource(src, fps)
		}

	case "text":
		var tc *text.Clip
		tc, err = text.New(text.Options{
			FontPath: l.Font,
			Text:     l.Text,
			FontSize: l.FontSize,
			Width:    l.Width,
			Height:   l.Height,
			Color:    l.TextColor,
			BGColor:  l.BGColor,
			Method:   l.Method,
			Duration: duration,
		})
		if err == nil {
			c = tc.Clip
		}

	default:
		return nil, fmt.Errorf("unknown layer type %q", l.Type)
	}
	if err != nil {
		return nil, err
	}

	if l.Start > 0 {
		c = c.WithStart(l.Start)
	}
	if l.Opacity > 0 && l.Opacity < 1 {
		c = c.WithOpacity(l.Opacity)
	}
	if l.Index != 0 {
		c = c.WithLayer(l.Index)
	}

	switch {
	case len(l.Keyframes) > 0:
		c = c.WithPositionFunc(PositionFunc(l.Keyframes))
	case len(l.Position) == 2:
		pos, err := parsePosition(l.Position)
		if err != nil {
			return nil, err
		}
		if l.Relative {
			c = c.WithRelativePosition(pos)
		} else {
			c = c.WithPosition(pos)
		}
	case len(l.Position) != 0:
		return nil, fmt.Errorf("position needs exactly [x, y], got %v", l.Position)
	}
	return c, nil
}

func parsePosition(xy []string) (clip.Position, error) {
	coords := [2]clip.Coord{}
	for i, v := range xy {
		switch clip.Anchor(v) {
		case clip.Left, clip.Right, clip.Top, clip.Bottom, clip.Center:
			coords[i] = clip.Coord{Anchor: clip.Anchor(v)}
		default:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return clip.Position{}, fmt.Errorf("bad position component %q", v)
			}
			coords[i] = clip.Coord{Offset: f}
		}
	}
	return clip.Position{X: coords[0], Y: coords[1]}, nil
}
