package scene

import (
	"math"

	"github.com/ivlev/clipforge/internal/clip"
)

// PositionFunc turns a keyframe list into a time-varying position. Before
// the first keyframe the first position holds, after the last the last
// one; in between, coordinates are interpolated with smooth in-out easing.
func PositionFunc(keyframes []Keyframe) clip.PosFunc {
	return func(t float64) clip.Position {
		x, y := interpolate(keyframes, t)
		return clip.At(x, y)
	}
}

func interpolate(keyframes []Keyframe, t float64) (float64, float64) {
	if len(keyframes) == 0 {
		return 0, 0
	}
	if t <= keyframes[0].Time {
		return keyframes[0].X, keyframes[0].Y
	}
	last := keyframes[len(keyframes)-1]
	if t >= last.Time {
		return last.X, last.Y
	}

	var prev, next Keyframe
	for i := 0; i < len(keyframes)-1; i++ {
		if t >= keyframes[i].Time && t < keyframes[i+1].Time {
			prev, next = keyframes[i], keyframes[i+1]
			break
		}
	}

	delta := next.Time - prev.Time
	if delta == 0 {
		delta = 0.001
	}
	f := easeInOutCubic((t - prev.Time) / delta)
	return lerp(prev.X, next.X, f), lerp(prev.Y, next.Y, f)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
