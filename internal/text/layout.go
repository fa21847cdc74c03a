package text

import "strings"

// Style bundles the font settings every measurement depends on.
type Style struct {
	Font        *Font
	Size        int
	StrokeWidth int
	Spacing     int // interline spacing in pixels
}

// Wrap greedily breaks text into lines no wider than maxWidth at the given
// style. Words are joined by single spaces; a word is accepted into the
// current line if the tentative line still measures within maxWidth,
// otherwise the line is closed and the word starts a new one. A single
// word wider than maxWidth is not split: it stays alone on its own
// overflowing line.
func Wrap(maxWidth int, text string, style Style) ([]string, error) {
	face, err := style.Font.Face(style.Size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	var lines []string
	current := ""
	for _, word := range strings.Split(text, " ") {
		tentative := word
		if current != "" {
			tentative = current + " " + word
		}
		w, _ := blockSize(face, splitLines(tentative), style.Spacing, style.StrokeWidth)
		if w <= maxWidth || current == "" {
			// An oversized first word of a line is kept unsplit on its
			// own overflowing line.
			current = tentative
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines, nil
}

// Measure returns the pixel bounding box of the text. With allowBreak the
// text is first wrapped to maxWidth and the wrapped block is measured;
// otherwise the text is measured exactly as given, maxWidth ignored.
func Measure(text string, style Style, maxWidth int, allowBreak bool) (int, int, error) {
	lines := splitLines(text)
	if allowBreak && maxWidth > 0 {
		var err error
		lines, err = Wrap(maxWidth, text, style)
		if err != nil {
			return 0, 0, err
		}
	}

	face, err := style.Font.Face(style.Size)
	if err != nil {
		return 0, 0, err
	}
	defer face.Close()

	w, h := blockSize(face, lines, style.Spacing, style.StrokeWidth)
	return w, h, nil
}

// OptimumFontSize bisects over integer font sizes in [1, width] for the
// largest size at which the text fits in width (and height, when
// positive). With allowBreak each probe wraps the text to width first.
//
// Wrapping can shift line boundaries between probe sizes, so "fits" is not
// provably monotonic in pathological inputs; the search assumes it is, and
// re-validates the final candidate, stepping down one size if the boundary
// update overshot.
func OptimumFontSize(text string, style Style, width, height int, allowBreak bool) (int, error) {
	fits := func(size int) (bool, error) {
		st := style
		st.Size = size
		w, h, err := Measure(text, st, width, allowBreak)
		if err != nil {
			return false, err
		}
		return w <= width && (height <= 0 || h <= height), nil
	}

	lo, hi := 1, width
	for lo < hi {
		mid := (lo + hi) / 2
		ok, err := fits(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	ok, err := fits(lo)
	if err != nil {
		return 0, err
	}
	if ok {
		return lo, nil
	}
	return lo - 1, nil
}
