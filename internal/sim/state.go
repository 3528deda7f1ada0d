package sim

// RunState is the position of the simulation in its run/pause lifecycle.
type RunState int

const (
	// Idle: no run started, or just reset.
	Idle RunState = iota
	// Running: sub-steps are issued on every tick.
	Running
	// Paused: stopped by the user, resumable with state intact.
	Paused
	// AutoPaused: stopped because the auto-pause time was reached.
	AutoPaused
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case AutoPaused:
		return "auto-paused"
	default:
		return "unknown"
	}
}
