package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/clipforge/internal/clip"
)

// Align is a horizontal or vertical alignment keyword.
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignTop    Align = "top"
	AlignBottom Align = "bottom"
	AlignCenter Align = "center"
)

// Layout methods.
const (
	MethodLabel   = "label"   // autosize the box to the text
	MethodCaption = "caption" // fit the text into a fixed box, wrapping
)

// Options configures a text clip. Zero values pick the usual defaults:
// method label, text align left, block alignment centered, interline 4,
// transparent background.
type Options struct {
	FontPath string
	Text     string
	Filename string // read the text from a file instead

	FontSize      int // mandatory for label unless Width is given
	Width, Height int // box size; Width mandatory for caption

	Color       [3]uint8  // text color, default black
	BGColor     *[3]uint8 // nil for no background
	StrokeColor *[3]uint8 // nil for no stroke
	StrokeWidth int

	Method          string
	TextAlign       Align // per-line alignment inside the block
	HorizontalAlign Align // block alignment inside the box
	VerticalAlign   Align
	Interline       int  // 0 picks the default of 4
	Opaque          bool // disable the transparency mask

	Duration float64 // <= 0 for unbounded
}

// Clip is a static clip rasterized from text, remembering the final text
// (with the line breaks a caption layout inserted) and resolved font size.
type Clip struct {
	*clip.Clip
	Text     string
	FontSize int
}

// New lays out and rasterizes a text clip. Configuration errors (invalid
// font, missing text, missing mandatory size for the chosen method,
// unknown method) are rejected before any layout or rendering work.
func New(o Options) (*Clip, error) {
	fnt, err := LoadFont(o.FontPath)
	if err != nil {
		return nil, err
	}

	txt := o.Text
	if o.Filename != "" {
		data, err := os.ReadFile(o.Filename)
		if err != nil {
			return nil, err
		}
		txt = strings.TrimRight(string(data), "\n")
	}
	if txt == "" {
		return nil, fmt.Errorf("no text nor filename provided")
	}

	method := o.Method
	if method == "" {
		method = MethodLabel
	}
	interline := o.Interline
	if interline == 0 {
		interline = 4
	}
	textAlign := o.TextAlign
	if textAlign == "" {
		textAlign = AlignLeft
	}

	style := Style{Font: fnt, Size: o.FontSize, StrokeWidth: o.StrokeWidth, Spacing: interline}
	boxW, boxH := o.Width, o.Height

	switch method {
	case MethodCaption:
		if boxW == 0 {
			return nil, fmt.Errorf("width is mandatory when method is caption")
		}
		if boxH == 0 && style.Size == 0 {
			return nil, fmt.Errorf("height is mandatory when method is caption and font size is not set")
		}
		if style.Size == 0 {
			style.Size, err = OptimumFontSize(txt, style, boxW, boxH, true)
			if err != nil {
				return nil, err
			}
		}
		if boxH == 0 {
			_, boxH, err = Measure(txt, style, boxW, true)
			if err != nil {
				return nil, err
			}
		}
		// The wrapped layout becomes permanent: the stored text carries
		// the line breaks from here on.
		lines, err := Wrap(boxW, txt, style)
		if err != nil {
			return nil, err
		}
		txt = strings.Join(lines, "\n")

	case MethodLabel:
		if style.Size == 0 && boxW == 0 {
			return nil, fmt.Errorf("font size is mandatory when method is label and size is not set")
		}
		if style.Size == 0 {
			style.Size, err = OptimumFontSize(txt, style, boxW, boxH, false)
			if err != nil {
				return nil, err
			}
		}
		if boxW == 0 {
			boxW, _, err = Measure(txt, style, 0, false)
			if err != nil {
				return nil, err
			}
		}
		if boxH == 0 {
			_, boxH, err = Measure(txt, style, boxW, false)
			if err != nil {
				return nil, err
			}
		}

	default:
		return nil, fmt.Errorf("method must be either %q or %q, got %q", MethodLabel, MethodCaption, method)
	}

	img, err := render(txt, style, boxW, boxH, o, textAlign)
	if err != nil {
		return nil, err
	}

	duration := o.Duration
	if duration <= 0 {
		duration = clip.Unbounded
	}
	c := clip.FromImage(img, !o.Opaque, duration)
	return &Clip{Clip: c, Text: txt, FontSize: style.Size}, nil
}

func render(txt string, style Style, boxW, boxH int, o Options, textAlign Align) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, boxW, boxH))
	if o.BGColor != nil {
		bg := o.BGColor
		draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{bg[0], bg[1], bg[2], 255}), image.Point{}, draw.Src)
	} else if o.Opaque {
		draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	}

	textW, textH, err := Measure(txt, style, 0, false)
	if err != nil {
		return nil, err
	}

	x := 0
	switch o.HorizontalAlign {
	case AlignLeft:
	case AlignRight:
		x = boxW - textW
	default:
		x = (boxW - textW) / 2
	}
	y := 0
	switch o.VerticalAlign {
	case AlignTop:
	case AlignBottom:
		y = boxH - textH
	default:
		y = (boxH - textH) / 2
	}

	// The rasterizer anchors at left-middle, so the vertical draw
	// coordinate references the block's middle line, not its top.
	y += textH / 2

	face, err := style.Font.Face(style.Size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	if o.StrokeWidth > 0 && o.StrokeColor != nil {
		sc := o.StrokeColor
		sw := o.StrokeWidth
		for dy := -sw; dy <= sw; dy++ {
			for dx := -sw; dx <= sw; dx++ {
				if dx*dx+dy*dy > sw*sw {
					continue
				}
				drawBlock(img, face, txt, style, textAlign, textW, x+dx, y+dy, color.RGBA{sc[0], sc[1], sc[2], 255})
			}
		}
	}
	drawBlock(img, face, txt, style, textAlign, textW, x, y, color.RGBA{o.Color[0], o.Color[1], o.Color[2], 255})
	return img, nil
}

// drawBlock draws the text block with its left edge at x and its vertical
// middle at y. Lines are aligned inside the block per textAlign.
func drawBlock(dst *image.RGBA, face font.Face, txt string, style Style, textAlign Align, blockW, x, y int, col color.RGBA) {
	lines := splitLines(txt)
	m := face.Metrics()
	lineHeight := (m.Ascent + m.Descent).Ceil()
	totalH := len(lines)*lineHeight + (len(lines)-1)*style.Spacing

	innerW := blockW - 2*style.StrokeWidth
	baseline := y - totalH/2 + m.Ascent.Ceil()

	d := font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	for _, line := range lines {
		lx := x + style.StrokeWidth
		switch textAlign {
		case AlignCenter:
			lx += (innerW - lineWidth(face, line)) / 2
		case AlignRight:
			lx += innerW - lineWidth(face, line)
		}
		d.Dot = fixed.P(lx, baseline)
		d.DrawString(line)
		baseline += lineHeight + style.Spacing
	}
}
