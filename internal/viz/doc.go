// Package viz draws the particle simulation in the terminal.
//
// A [Renderer] paints a [sim.Frame] onto a braille [Canvas] through a
// [Camera]; [Model] is the Bubble Tea program that drives the simulation
// clock from its tick messages and maps keys and mouse input onto
// simulation commands.
//
// # Key Bindings
//
//	Space  - start / pause
//	R      - reset
//	F      - next field type
//	N / ⇧N - next / previous preset
//	+ / -  - zoom
//	[ / ]  - trail length
//	T      - cycle colour themes
//	?      - help overlay
package viz
