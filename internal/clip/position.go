package clip

// Anchor names a side or the center of an axis when positioning a clip on
// a background.
type Anchor string

const (
	Left   Anchor = "left"
	Right  Anchor = "right"
	Top    Anchor = "top"
	Bottom Anchor = "bottom"
	Center Anchor = "center"
)

// Coord is one axis of a position: either an anchor or an absolute offset.
// An empty anchor means the offset is used.
type Coord struct {
	Anchor Anchor
	Offset float64
}

// Position places a clip's top-left corner on a background, per axis.
type Position struct {
	X, Y Coord
}

// PosFunc yields the position of a clip at clip-local time t.
type PosFunc func(t float64) Position

// At returns an absolute pixel position.
func At(x, y float64) Position {
	return Position{X: Coord{Offset: x}, Y: Coord{Offset: y}}
}

// Anchored returns a position from a horizontal and a vertical anchor.
func Anchored(h, v Anchor) Position {
	return Position{X: Coord{Anchor: h}, Y: Coord{Anchor: v}}
}

// FromAnchor expands the single-anchor shorthand: "center" centers both
// axes, "left"/"right" center vertically, "top"/"bottom" center
// horizontally.
func FromAnchor(a Anchor) Position {
	switch a {
	case Left, Right:
		return Anchored(a, Center)
	case Top, Bottom:
		return Anchored(Center, a)
	default:
		return Anchored(Center, Center)
	}
}

// WithPosition returns a copy positioned at pos in compositions.
func (c *Clip) WithPosition(pos Position) *Clip {
	return c.WithPositionFunc(func(t float64) Position { return pos })
}

// WithPositionFunc returns a copy whose position varies with time.
func (c *Clip) WithPositionFunc(pos PosFunc) *Clip {
	out := c.Copy()
	out.Pos = pos
	out.RelativePos = false
	if out.Mask != nil {
		out.Mask.Pos = pos
		out.Mask.RelativePos = false
	}
	return out
}

// WithRelativePosition positions the clip with numeric coordinates in 0..1
// interpreted as fractions of the background size.
func (c *Clip) WithRelativePosition(pos Position) *Clip {
	out := c.WithPosition(pos)
	out.RelativePos = true
	if out.Mask != nil {
		out.Mask.RelativePos = true
	}
	return out
}
