// Package geom maps input-device coordinates onto the backing store.
package geom

import "math"

// Point is a position in either device or backing-store space.
type Point struct {
	X, Y float64
}

// Eq reports whether p and q are the same point.
func (p Point) Eq(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is the on-screen rectangle of the drawing element, in device units.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// MapToBacking converts a device point into backing-store pixel coordinates:
//
//	(device - origin) * (backing / display)
//
// independently per axis. ok is false when either the display or the backing
// store has no area, in which case the event must be skipped.
func MapToBacking(device Point, display Rect, backingW, backingH int) (p Point, ok bool) {
	if display.Width <= 0 || display.Height <= 0 || backingW <= 0 || backingH <= 0 {
		return Point{}, false
	}
	sx := float64(backingW) / display.Width
	sy := float64(backingH) / display.Height
	return Point{
		X: (device.X - display.X) * sx,
		Y: (device.Y - display.Y) * sy,
	}, true
}
