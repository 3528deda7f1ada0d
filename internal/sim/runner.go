package sim

import (
	"context"
	"math"
	"time"
)

// FrameInterval is the nominal display refresh used by headless runs.
const FrameInterval = time.Second / 60

var headlessEpoch = time.Unix(0, 0)

// FramesFor returns the number of ticks needed to cover duration units of
// simulation time.
func FramesFor(duration float64) int {
	if duration <= 0 {
		return 0
	}
	return int(math.Ceil(duration/(Dt*StepsPerFrame) - 1e-9))
}

// RunFrames starts the simulation and ticks it up to frames times on a
// synthetic 60 Hz clock, stopping early on auto-pause or cancellation.
// onFrame, if non-nil, sees every rendered frame.
func (s *Simulation) RunFrames(ctx context.Context, frames int, onFrame func(Frame)) error {
	s.Start()
	now := headlessEpoch
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now = now.Add(FrameInterval)
		if !s.Tick(now) {
			break
		}
		if onFrame != nil {
			onFrame(s.Frame())
		}
		if s.state != Running {
			break
		}
	}
	return nil
}

// RunFor runs headless for duration units of simulation time.
func (s *Simulation) RunFor(ctx context.Context, duration float64, onFrame func(Frame)) error {
	return s.RunFrames(ctx, FramesFor(duration), onFrame)
}
