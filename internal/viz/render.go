package viz

import (
	"math"

	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
)

const (
	glyphSpacingPx = 16
	radialSpokes   = 16
	minGlyphLen    = 1e-6
)

// Renderer paints a simulation frame onto a canvas through a camera. It only
// reads the frame.
type Renderer struct {
	canvas *Canvas
	camera *Camera
}

func NewRenderer(canvas *Canvas, camera *Camera) *Renderer {
	return &Renderer{canvas: canvas, camera: camera}
}

func (r *Renderer) Draw(f sim.Frame) {
	r.canvas.Clear()
	r.drawGrid()
	r.drawField(f.Field)
	r.drawTrail(f.Trail)
	r.drawParticle(f.Particle)
}

func (r *Renderer) size() (int, int) { return r.canvas.Size() }

func (r *Renderer) point(p dynamo.Vec2) (int, int) {
	w, h := r.size()
	return r.camera.ToScreen(p, w, h)
}

func (r *Renderer) gridStep() float64 {
	w, _ := r.size()
	return gridStep(r.camera, w)
}

// gridStep picks a power of ten giving roughly five cells across a view w
// pixels wide.
func gridStep(cam *Camera, w int) float64 {
	viewWidth := float64(w) / cam.Zoom
	return math.Pow(10, math.Floor(math.Log10(viewWidth/5)))
}

func (r *Renderer) drawGrid() {
	w, h := r.size()
	lo, hi := r.camera.View(w, h)
	step := r.gridStep()

	for x := math.Floor(lo.X/step) * step; x <= hi.X; x += step {
		for y := math.Floor(lo.Y/step) * step; y <= hi.Y; y += step {
			r.canvas.Set(r.point(dynamo.Vec2{X: x, Y: y}))
		}
	}

	x0, y0 := r.point(dynamo.Vec2{X: lo.X, Y: 0})
	x1, y1 := r.point(dynamo.Vec2{X: hi.X, Y: 0})
	r.canvas.Line(x0, y0, x1, y1)
	x0, y0 = r.point(dynamo.Vec2{X: 0, Y: lo.Y})
	x1, y1 = r.point(dynamo.Vec2{X: 0, Y: hi.Y})
	r.canvas.Line(x0, y0, x1, y1)
}

func (r *Renderer) glyphSpacing() float64 {
	w, _ := r.size()
	return glyphSpacing(r.camera, w, glyphSpacingPx)
}

// glyphSpacing is the world distance between field glyphs, never closer than
// minPx on screen.
func glyphSpacing(cam *Camera, w int, minPx float64) float64 {
	step := gridStep(cam, w)
	for step*cam.Zoom < minPx {
		step *= 2
	}
	return step
}

func (r *Renderer) drawField(field physics.Field) {
	w, h := r.size()
	lo, hi := r.camera.View(w, h)
	d := r.glyphSpacing()

	eachGlyph := func(fn func(p dynamo.Vec2)) {
		for y := math.Floor(lo.Y/d)*d + d/2; y < hi.Y; y += d {
			for x := math.Floor(lo.X/d)*d + d/2; x < hi.X; x += d {
				fn(dynamo.Vec2{X: x, Y: y})
			}
		}
	}

	switch f := field.(type) {
	case physics.UniformE:
		eachGlyph(func(p dynamo.Vec2) {
			r.arrow(p, dynamo.Vec2{X: f.Ex, Y: f.Ey}, d*0.4)
		})
	case physics.UniformB:
		eachGlyph(func(p dynamo.Vec2) {
			x, y := r.point(p)
			r.canvas.Ring(x, y, 2)
			switch {
			case f.Bz > 0: // out of the plane
				r.canvas.Set(x, y)
			case f.Bz < 0: // into the plane
				r.canvas.Line(x-1, y-1, x+1, y+1)
				r.canvas.Line(x-1, y+1, x+1, y-1)
			}
		})
	case physics.RadialE:
		r.drawRadial(f, lo, hi)
	}
}

func (r *Renderer) drawRadial(f physics.RadialE, lo, hi dynamo.Vec2) {
	reach := math.Max(math.Max(math.Abs(lo.X), math.Abs(hi.X)), math.Max(math.Abs(lo.Y), math.Abs(hi.Y))) * math.Sqrt2
	sign := 1.0
	if f.KQ < 0 {
		sign = -1
	}

	for i := 0; i < radialSpokes; i++ {
		a := 2 * math.Pi * float64(i) / radialSpokes
		dir := dynamo.Vec2{X: math.Cos(a), Y: math.Sin(a)}
		x0, y0 := r.point(dir.Scale(0.7))
		x1, y1 := r.point(dir.Scale(reach))
		r.canvas.Line(x0, y0, x1, y1)
		r.arrow(dir.Scale(5), dir.Scale(sign), 1)
	}

	cx, cy := r.point(dynamo.Vec2{})
	rad := int(math.Max(2, math.Round(0.5*r.camera.Zoom)))
	if f.KQ > 0 {
		r.canvas.Disc(cx, cy, rad)
	} else {
		r.canvas.Ring(cx, cy, rad)
	}
}

// arrow draws a glyph of world length at p pointing along dir. Directions
// shorter than minGlyphLen are skipped instead of normalised.
func (r *Renderer) arrow(p, dir dynamo.Vec2, length float64) {
	n := dir.Norm()
	if n < minGlyphLen {
		return
	}
	u := dir.Scale(1 / n)
	tip := p.Add(u.Scale(length))

	x0, y0 := r.point(p)
	x1, y1 := r.point(tip)
	r.canvas.Line(x0, y0, x1, y1)

	head := length * 0.4
	angle := math.Atan2(u.Y, u.X)
	for _, off := range []float64{-math.Pi / 6, math.Pi / 6} {
		back := dynamo.Vec2{X: math.Cos(angle + off), Y: math.Sin(angle + off)}
		bx, by := r.point(tip.Sub(back.Scale(head)))
		r.canvas.Line(x1, y1, bx, by)
	}
}

func (r *Renderer) drawTrail(pts []dynamo.Vec2) {
	if len(pts) < 2 {
		return
	}
	px, py := r.point(pts[0])
	for _, p := range pts[1:] {
		if !p.IsValid() {
			return
		}
		x, y := r.point(p)
		r.canvas.Line(px, py, x, y)
		px, py = x, y
	}
}

func (r *Renderer) drawParticle(p dynamo.Particle) {
	if !p.Pos.IsValid() {
		return
	}
	x, y := r.point(p.Pos)
	r.canvas.Disc(x, y, 1)
}
