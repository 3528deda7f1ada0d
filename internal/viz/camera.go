package viz

import (
	"math"

	"github.com/san-kum/lorentz/internal/dynamo"
)

const (
	minZoom = 0.05
	maxZoom = 400
)

// Camera maps simulation space to canvas pixels. Pan is in screen pixels,
// Zoom in pixels per simulation unit; y points up in simulation space.
type Camera struct {
	PanX, PanY float64
	Zoom       float64
}

func NewCamera(zoom float64) *Camera {
	return &Camera{Zoom: clampZoom(zoom)}
}

// ToScreen projects p onto a w×h pixel surface.
func (c *Camera) ToScreen(p dynamo.Vec2, w, h int) (int, int) {
	sx, sy := c.Project(p, w, h)
	return int(math.Round(sx)), int(math.Round(sy))
}

// Project is ToScreen without rounding, for vector back ends.
func (c *Camera) Project(p dynamo.Vec2, w, h int) (float64, float64) {
	return float64(w)/2 + c.PanX + p.X*c.Zoom, float64(h)/2 + c.PanY - p.Y*c.Zoom
}

// ToWorld is the inverse of ToScreen.
func (c *Camera) ToWorld(sx, sy float64, w, h int) dynamo.Vec2 {
	return dynamo.Vec2{
		X: (sx - float64(w)/2 - c.PanX) / c.Zoom,
		Y: -(sy - float64(h)/2 - c.PanY) / c.Zoom,
	}
}

// View returns the simulation-space rectangle visible on a w×h surface.
func (c *Camera) View(w, h int) (min, max dynamo.Vec2) {
	a := c.ToWorld(0, float64(h), w, h)
	b := c.ToWorld(float64(w), 0, w, h)
	return a, b
}

func (c *Camera) Pan(dx, dy float64) {
	c.PanX += dx
	c.PanY += dy
}

// ZoomBy scales the zoom by f, keeping the point under the screen centre fixed.
func (c *Camera) ZoomBy(f float64) {
	z := clampZoom(c.Zoom * f)
	ratio := z / c.Zoom
	c.PanX *= ratio
	c.PanY *= ratio
	c.Zoom = z
}

func (c *Camera) Center() {
	c.PanX, c.PanY = 0, 0
}

func clampZoom(z float64) float64 {
	return math.Max(minZoom, math.Min(maxZoom, z))
}
