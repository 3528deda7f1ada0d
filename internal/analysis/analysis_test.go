package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/sim"
)

func sine(period, interval, duration float64) []float64 {
	n := int(duration / interval)
	out := make([]float64, n)
	for i := range out {
		out[i] = 3 + 2*math.Sin(2*math.Pi*float64(i)*interval/period)
	}
	return out
}

func TestPowerSpectrum(t *testing.T) {
	ps := PowerSpectrum(sine(1, 1.0/64, 1))
	if len(ps) != 32 {
		t.Fatalf("len = %d, want 32", len(ps))
	}
	// 3 + 2 sin: DC 3·64, one cycle per record at bin 1 with magnitude 64
	if math.Abs(ps[0]-192) > 1e-6 || math.Abs(ps[1]-64) > 1e-6 {
		t.Errorf("bins = %v, %v", ps[0], ps[1])
	}
	if n := len(PowerSpectrum(make([]float64, 5))); n != 2 {
		t.Errorf("odd length: got %d bins, want 2", n)
	}
}

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		period, interval, duration float64
	}{
		{2, 0.01, 20},
		{2 * math.Pi, 0.005, 30},
		{0.5, 0.01, 5},
	}
	for _, tt := range tests {
		got := DominantPeriod(sine(tt.period, tt.interval, tt.duration), tt.interval)
		if math.Abs(got-tt.period)/tt.period > 0.03 {
			t.Errorf("period %v: got %v", tt.period, got)
		}
	}

	if got := DominantPeriod(make([]float64, 100), 0.1); got != 0 {
		t.Errorf("constant signal: got %v, want 0", got)
	}
	if got := DominantPeriod([]float64{1, 2}, 0.1); got != 0 {
		t.Errorf("short signal: got %v, want 0", got)
	}
}

func TestCrossingPeriod(t *testing.T) {
	got := CrossingPeriod(sine(2, 0.01, 20), 0.01)
	if math.Abs(got-2) > 1e-3 {
		t.Errorf("got %v, want 2", got)
	}
	if got := CrossingPeriod(sine(50, 0.01, 20), 0.01); got != 0 {
		t.Errorf("single crossing: got %v, want 0", got)
	}
}

func TestRecorderStride(t *testing.T) {
	r := NewRecorder(3)
	p := dynamo.NewParticle(1, 1, dynamo.Vec2{}, dynamo.Vec2{X: 1})
	for i := 1; i <= 7; i++ {
		p.Pos.X = float64(i)
		r.OnStep(p, float64(i))
	}
	want := []float64{1, 4, 7}
	if len(r.Times) != len(want) {
		t.Fatalf("samples = %v, want %v", r.Times, want)
	}
	for i, x := range r.X() {
		if x != want[i] {
			t.Errorf("x[%d] = %v, want %v", i, x, want[i])
		}
	}
	if r.Interval(0.5) != 1.5 {
		t.Errorf("interval = %v", r.Interval(0.5))
	}

	r.Reset()
	if len(r.Pos) != 0 {
		t.Error("Reset kept samples")
	}
}

func TestRecorderMeasuresCyclotronPeriod(t *testing.T) {
	s, err := sim.New(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(1)
	s.AddObserver(rec)
	if err := s.RunFor(context.Background(), 20, nil); err != nil {
		t.Fatal(err)
	}

	want := 2 * math.Pi
	if got := CrossingPeriod(rec.X(), rec.Interval(sim.Dt)); math.Abs(got-want) > 0.05 {
		t.Errorf("crossing period = %v, want %v", got, want)
	}
	if got := DominantPeriod(rec.Y(), rec.Interval(sim.Dt)); math.Abs(got-want)/want > 0.05 {
		t.Errorf("spectral period = %v, want %v", got, want)
	}
}

func TestPlot(t *testing.T) {
	var pts []dynamo.Vec2
	for i := 0; i < 64; i++ {
		a := 2 * math.Pi * float64(i) / 64
		pts = append(pts, dynamo.Vec2{X: math.Cos(a), Y: math.Sin(a)})
	}
	out := Plot(pts, 40, 20)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d rows, want 20", len(lines))
	}
	if !strings.Contains(out, "•") || !strings.Contains(out, "│") || !strings.Contains(out, "─") {
		t.Errorf("plot missing points or axes:\n%s", out)
	}

	if Plot(nil, 40, 20) != "" {
		t.Error("empty input drew something")
	}
	if Plot([]dynamo.Vec2{{X: math.NaN()}}, 40, 20) != "" {
		t.Error("only invalid points drew something")
	}
}
