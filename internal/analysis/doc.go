// Package analysis measures recorded trajectories.
//
//   - [Recorder]: a step observer that samples position and velocity
//   - [DominantPeriod]: strongest period of a signal from its power spectrum
//   - [CrossingPeriod]: mean interval between upward mean crossings
//   - [Plot]: ASCII scatter of a point set, e.g. the hodograph v(t)
//
// In a uniform magnetic field both periods approach the cyclotron period
// 2πm/|qB|:
//
//	rec := analysis.NewRecorder(1)
//	s.AddObserver(rec)
//	_ = s.RunFor(ctx, 20, nil)
//	T := analysis.CrossingPeriod(rec.X(), sim.Dt)
package analysis
