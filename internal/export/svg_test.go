package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)

	svg := CanvasToSVG(c, 2, "#00ffff")
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circles = %d, want 2", got)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Errorf("unexpected size in %s", svg[:120])
	}
	if !strings.Contains(svg, `cx="15.0" cy="15.0"`) {
		t.Error("last pixel misplaced")
	}
	if CanvasToSVG(nil, 1, "#fff") != "" {
		t.Error("nil canvas produced output")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	pts := []dynamo.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	svg := TrajectoryToSVG(pts, 200, 100, "red")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("segments = %d, want 2", got)
	}
	if !strings.Contains(svg, `stroke="red"`) {
		t.Error("stroke colour missing")
	}
}

func TestTrajectoryToSVGStopsAtInvalidPoint(t *testing.T) {
	pts := []dynamo.Vec2{{X: 0}, {X: 1}, {X: math.NaN()}, {X: 3}}
	svg := TrajectoryToSVG(pts, 100, 100, "red")
	if got := strings.Count(svg, " L"); got != 1 {
		t.Errorf("segments = %d, want 1", got)
	}
	if strings.Contains(svg, "NaN") {
		t.Error("NaN written to path")
	}

	if TrajectoryToSVG(pts[:1], 100, 100, "red") != "" {
		t.Error("single point produced a path")
	}
}
