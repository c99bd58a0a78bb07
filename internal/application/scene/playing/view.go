package playing

import "github.com/younwookim/tilegrid/internal/domain/geom"

// view maps world coordinates (y up) to screen pixels (y down)
type view struct {
	origin  geom.Vec2 // world position of the screen's bottom-left corner
	screenH int
}

// newView centers the screen on focus and clamps it to the world.
// A world smaller than the screen is centered instead.
func newView(focus, world geom.Vec2, screenW, screenH int) view {
	axis := func(f, size float64, screen int) float64 {
		s := float64(screen)
		if size <= s {
			return (size - s) / 2
		}
		o := f - s/2
		if o < 0 {
			return 0
		}
		if o > size-s {
			return size - s
		}
		return o
	}

	return view{
		origin: geom.V(
			axis(focus.X, world.X, screenW),
			axis(focus.Y, world.Y, screenH),
		),
		screenH: screenH,
	}
}

func (v view) toScreen(p geom.Vec2) (float32, float32) {
	return float32(p.X - v.origin.X), float32(float64(v.screenH) - (p.Y - v.origin.Y))
}
