package analysis

import (
	"strings"

	"github.com/san-kum/lorentz/internal/dynamo"
)

// Recorder samples the particle every stride sub-steps.
type Recorder struct {
	stride int
	n      int
	Times  []float64
	Pos    []dynamo.Vec2
	Vel    []dynamo.Vec2
}

func NewRecorder(stride int) *Recorder {
	if stride < 1 {
		stride = 1
	}
	return &Recorder{stride: stride}
}

func (r *Recorder) OnStep(p dynamo.Particle, t float64) {
	r.n++
	if (r.n-1)%r.stride != 0 {
		return
	}
	r.Times = append(r.Times, t)
	r.Pos = append(r.Pos, p.Pos)
	r.Vel = append(r.Vel, p.Vel)
}

// Interval is the time between samples for a fixed step dt.
func (r *Recorder) Interval(dt float64) float64 { return float64(r.stride) * dt }

func (r *Recorder) X() []float64 { return component(r.Pos, func(v dynamo.Vec2) float64 { return v.X }) }

func (r *Recorder) Y() []float64 { return component(r.Pos, func(v dynamo.Vec2) float64 { return v.Y }) }

func (r *Recorder) Reset() {
	r.n = 0
	r.Times, r.Pos, r.Vel = r.Times[:0], r.Pos[:0], r.Vel[:0]
}

func component(vs []dynamo.Vec2, fn func(dynamo.Vec2) float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = fn(v)
	}
	return out
}

// CrossingPeriod is the mean time between upward crossings of the signal's
// mean, interpolated linearly between samples. It needs at least two
// crossings and returns 0 otherwise.
func CrossingPeriod(samples []float64, interval float64) float64 {
	if len(samples) < 3 || interval <= 0 {
		return 0
	}
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	var crossings []float64
	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1]-mean, samples[i]-mean
		if prev < 0 && curr >= 0 {
			frac := -prev / (curr - prev)
			crossings = append(crossings, (float64(i-1)+frac)*interval)
		}
	}
	if len(crossings) < 2 {
		return 0
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1)
}

// Plot draws points scaled to a width×height character grid, with axes where
// they cross the visible area.
func Plot(points []dynamo.Vec2, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	first := -1
	for i, p := range points {
		if p.IsValid() {
			first = i
			break
		}
	}
	if first < 0 {
		return ""
	}

	minX, maxX := points[first].X, points[first].X
	minY, maxY := points[first].Y, points[first].Y
	for _, p := range points[first:] {
		if !p.IsValid() {
			continue
		}
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		if !p.IsValid() {
			continue
		}
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
