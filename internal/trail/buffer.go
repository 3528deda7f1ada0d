// Package trail keeps the bounded position history drawn behind the particle.
package trail

import (
	"fmt"

	"github.com/san-kum/lorentz/internal/dynamo"
)

// Buffer is an ordered, bounded history of positions; the oldest entry is
// evicted first. Insertion order is chronological order.
type Buffer struct {
	points []dynamo.Vec2
	max    int
}

// prealloc bounds the up-front reservation; longer trails grow on demand.
const prealloc = 4096

func New(max int) (*Buffer, error) {
	if max < 1 {
		return nil, &dynamo.ConfigError{Field: "trail_length", Value: max, Err: dynamo.ErrTrailLength}
	}
	return &Buffer{points: make([]dynamo.Vec2, 0, min(max, prealloc)+1), max: max}, nil
}

// Push appends p and evicts from the front until len ≤ max.
func (b *Buffer) Push(p dynamo.Vec2) {
	b.points = append(b.points, p)
	b.trim()
}

// Clear drops the history and seeds it with the run's starting position.
func (b *Buffer) Clear(seed dynamo.Vec2) {
	b.points = b.points[:0]
	b.points = append(b.points, seed)
}

// Resize changes the bound, trimming immediately if it shrinks.
func (b *Buffer) Resize(max int) error {
	if max < 1 {
		return &dynamo.ConfigError{Field: "trail_length", Value: max, Err: dynamo.ErrTrailLength}
	}
	b.max = max
	b.trim()
	return nil
}

func (b *Buffer) trim() {
	if over := len(b.points) - b.max; over > 0 {
		// shift in place so the backing array does not creep forward forever
		n := copy(b.points, b.points[over:])
		b.points = b.points[:n]
	}
}

func (b *Buffer) Len() int { return len(b.points) }

func (b *Buffer) Max() int { return b.max }

// Points returns a copy of the history, oldest first.
func (b *Buffer) Points() []dynamo.Vec2 {
	out := make([]dynamo.Vec2, len(b.points))
	copy(out, b.points)
	return out
}

// Last returns the newest position.
func (b *Buffer) Last() (dynamo.Vec2, bool) {
	if len(b.points) == 0 {
		return dynamo.Vec2{}, false
	}
	return b.points[len(b.points)-1], true
}

func (b *Buffer) String() string {
	return fmt.Sprintf("trail(%d/%d)", len(b.points), b.max)
}
