package engine

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// referenceFrame is the frame time the lerp factor is expressed in.
const referenceFrame = time.Second / 60

// Camera follows a target with a deadzone and eases toward it. Offsets are
// in world units relative to the map origin, HUD offset excluded.
type Camera struct {
	x, y         float64
	tx, ty       float64
	viewW, viewH float64
	mapW, mapH   float64
	deadzone     float64
	lerp         float64
}

func newCamera(r CameraRules, mapW, mapH Fixed) *Camera {
	return &Camera{
		mapW:     float64(mapW),
		mapH:     float64(mapH),
		viewW:    float64(mapW),
		viewH:    float64(mapH),
		deadzone: r.Deadzone,
		lerp:     r.Lerp,
	}
}

// SetViewport sets the visible size in world units.
func (c *Camera) SetViewport(w, h Fixed) {
	c.viewW, c.viewH = float64(w), float64(h)
	c.x, c.y = c.clamp(c.x, c.y)
	c.tx, c.ty = c.clamp(c.tx, c.ty)
}

// Offset returns the current top-left of the view.
func (c *Camera) Offset() (Fixed, Fixed) {
	return Fixed(math.Round(c.x)), Fixed(math.Round(c.y))
}

// Snap centres the view on a point without easing.
func (c *Camera) Snap(px, py Fixed) {
	c.tx, c.ty = c.clamp(float64(px)-c.viewW/2, float64(py)-c.viewH/2)
	c.x, c.y = c.tx, c.ty
}

// Follow moves the target when the point leaves the deadzone, then eases
// the view toward the target by a factor scaled to dt.
func (c *Camera) Follow(px, py Fixed, dt time.Duration) {
	fx, fy := float64(px), float64(py)
	dzW, dzH := c.viewW*c.deadzone, c.viewH*c.deadzone
	left := c.tx + (c.viewW-dzW)/2
	top := c.ty + (c.viewH-dzH)/2

	switch {
	case fx < left:
		c.tx -= left - fx
	case fx > left+dzW:
		c.tx += fx - (left + dzW)
	}
	switch {
	case fy < top:
		c.ty -= top - fy
	case fy > top+dzH:
		c.ty += fy - (top + dzH)
	}
	c.tx, c.ty = c.clamp(c.tx, c.ty)

	alpha := 1 - math.Pow(1-c.lerp, float64(dt)/float64(referenceFrame))
	c.x += (c.tx - c.x) * alpha
	c.y += (c.ty - c.y) * alpha
	c.x, c.y = c.clamp(c.x, c.y)
}

func (c *Camera) clamp(x, y float64) (float64, float64) {
	return core.ClampF(x, 0, math.Max(0, c.mapW-c.viewW)), core.ClampF(y, 0, math.Max(0, c.mapH-c.viewH))
}
