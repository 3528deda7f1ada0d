package viz

import (
	"math"

	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
)

// Layer tags scene primitives so a back end can colour them.
type Layer int

const (
	LayerGrid Layer = iota
	LayerAxis
	LayerField
	LayerTrail
	LayerParticle
)

// Layers lists every layer in draw order.
var Layers = []Layer{LayerGrid, LayerAxis, LayerField, LayerTrail, LayerParticle}

// Segment is a straight line in screen pixels.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Layer          Layer
}

// Mark is a circle in screen pixels.
type Mark struct {
	X, Y, R float64
	Filled  bool
	Layer   Layer
}

// Scene is a frame flattened to screen-space primitives for vector back ends.
// Within a layer, segments come before marks.
type Scene struct {
	Segments []Segment
	Marks    []Mark
}

// SceneStyle holds the pixel sizes a back end draws with.
type SceneStyle struct {
	GlyphSpacing   float64
	GlyphRadius    float64
	ParticleRadius float64
}

var DefaultSceneStyle = SceneStyle{GlyphSpacing: 48, GlyphRadius: 6, ParticleRadius: 5}

// BuildScene projects f through cam onto a w×h pixel surface. Non-finite
// positions are left out. An empty surface yields an empty scene.
func BuildScene(f sim.Frame, cam *Camera, w, h int, style SceneStyle) Scene {
	if w <= 0 || h <= 0 {
		return Scene{}
	}
	b := &sceneBuilder{cam: cam, w: w, h: h, style: style}
	b.grid()
	b.field(f.Field)
	b.trail(f.Trail)
	if f.Particle.Pos.IsValid() {
		b.mark(f.Particle.Pos, style.ParticleRadius, true, LayerParticle)
	}
	return b.out
}

type sceneBuilder struct {
	cam   *Camera
	w, h  int
	style SceneStyle
	out   Scene
}

func (b *sceneBuilder) project(p dynamo.Vec2) (float64, float64) {
	return b.cam.Project(p, b.w, b.h)
}

func (b *sceneBuilder) line(p, q dynamo.Vec2, l Layer) {
	x0, y0 := b.project(p)
	x1, y1 := b.project(q)
	b.segment(x0, y0, x1, y1, l)
}

func (b *sceneBuilder) segment(x0, y0, x1, y1 float64, l Layer) {
	b.out.Segments = append(b.out.Segments, Segment{X0: x0, Y0: y0, X1: x1, Y1: y1, Layer: l})
}

func (b *sceneBuilder) mark(p dynamo.Vec2, r float64, filled bool, l Layer) {
	x, y := b.project(p)
	b.out.Marks = append(b.out.Marks, Mark{X: x, Y: y, R: r, Filled: filled, Layer: l})
}

func (b *sceneBuilder) grid() {
	lo, hi := b.cam.View(b.w, b.h)
	step := gridStep(b.cam, b.w)

	for x := math.Floor(lo.X/step) * step; x <= hi.X; x += step {
		b.line(dynamo.Vec2{X: x, Y: lo.Y}, dynamo.Vec2{X: x, Y: hi.Y}, LayerGrid)
	}
	for y := math.Floor(lo.Y/step) * step; y <= hi.Y; y += step {
		b.line(dynamo.Vec2{X: lo.X, Y: y}, dynamo.Vec2{X: hi.X, Y: y}, LayerGrid)
	}
	b.line(dynamo.Vec2{X: lo.X}, dynamo.Vec2{X: hi.X}, LayerAxis)
	b.line(dynamo.Vec2{Y: lo.Y}, dynamo.Vec2{Y: hi.Y}, LayerAxis)
}

func (b *sceneBuilder) field(field physics.Field) {
	lo, hi := b.cam.View(b.w, b.h)
	d := glyphSpacing(b.cam, b.w, b.style.GlyphSpacing)

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
			b.arrow(p, dynamo.Vec2{X: f.Ex, Y: f.Ey}, d*0.4)
		})
	case physics.UniformB:
		r := b.style.GlyphRadius
		eachGlyph(func(p dynamo.Vec2) {
			b.mark(p, r, false, LayerField)
			x, y := b.project(p)
			switch {
			case f.Bz > 0:
				b.out.Marks = append(b.out.Marks, Mark{X: x, Y: y, R: r / 3, Filled: true, Layer: LayerField})
			case f.Bz < 0:
				c := r * 0.6
				b.segment(x-c, y-c, x+c, y+c, LayerField)
				b.segment(x-c, y+c, x+c, y-c, LayerField)
			}
		})
	case physics.RadialE:
		b.radial(f, lo, hi, d)
	}
}

func (b *sceneBuilder) radial(f physics.RadialE, lo, hi dynamo.Vec2, d float64) {
	reach := math.Max(math.Max(math.Abs(lo.X), math.Abs(hi.X)), math.Max(math.Abs(lo.Y), math.Abs(hi.Y))) * math.Sqrt2
	sign := 1.0
	if f.KQ < 0 {
		sign = -1
	}

	for i := 0; i < radialSpokes; i++ {
		a := 2 * math.Pi * float64(i) / radialSpokes
		dir := dynamo.Vec2{X: math.Cos(a), Y: math.Sin(a)}
		b.line(dir.Scale(0.7), dir.Scale(reach), LayerField)
		b.arrow(dir.Scale(5), dir.Scale(sign), d*0.25)
	}

	r := math.Max(b.style.GlyphRadius, 0.5*b.cam.Zoom)
	b.mark(dynamo.Vec2{}, r, f.KQ > 0, LayerField)
}

// arrow adds a glyph of world length at p pointing along dir. Directions
// shorter than minGlyphLen are skipped instead of normalised.
func (b *sceneBuilder) arrow(p, dir dynamo.Vec2, length float64) {
	n := dir.Norm()
	if n < minGlyphLen {
		return
	}
	u := dir.Scale(1 / n)
	tip := p.Add(u.Scale(length))
	b.line(p, tip, LayerField)

	head := length * 0.4
	angle := math.Atan2(u.Y, u.X)
	for _, off := range []float64{-math.Pi / 6, math.Pi / 6} {
		back := dynamo.Vec2{X: math.Cos(angle + off), Y: math.Sin(angle + off)}
		b.line(tip, tip.Sub(back.Scale(head)), LayerField)
	}
}

func (b *sceneBuilder) trail(pts []dynamo.Vec2) {
	for i := 1; i < len(pts); i++ {
		if !pts[i-1].IsValid() || !pts[i].IsValid() {
			return
		}
		b.line(pts[i-1], pts[i], LayerTrail)
	}
}
