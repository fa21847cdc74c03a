// Package text implements the text layout engine: greedy line wrapping,
// pixel measurement, bisection search for the largest fitting font size,
// and rasterization of the result into a static clip.
package text

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Font is a parsed OpenType font ready to produce faces at any size.
type Font struct {
	Path string
	sfnt *opentype.Font
}

// LoadFont parses an OpenType font file. An invalid font is rejected here,
// before any layout computation begins.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sfnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid font %s: %w", path, err)
	}
	return &Font{Path: path, sfnt: sfnt}, nil
}

// Face returns a rendering/measurement face at the given point size.
func (f *Font) Face(size int) (font.Face, error) {
	if size < 1 {
		return nil, fmt.Errorf("font size must be >= 1, got %d", size)
	}
	return opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// lineWidth measures the pixel width of a single line.
func lineWidth(face font.Face, line string) int {
	return font.MeasureString(face, line).Ceil()
}

// blockSize measures the bounding box of already-broken lines: the widest
// line by n line heights plus interline spacing, plus the stroke on every
// side.
func blockSize(face font.Face, lines []string, spacing, strokeWidth int) (int, int) {
	m := face.Metrics()
	lineHeight := (m.Ascent + m.Descent).Ceil()

	w := 0
	for _, line := range lines {
		if lw := lineWidth(face, line); lw > w {
			w = lw
		}
	}
	h := len(lines)*lineHeight + (len(lines)-1)*spacing
	return w + 2*strokeWidth, h + 2*strokeWidth
}

// splitLines splits on explicit line breaks already present in the text.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
