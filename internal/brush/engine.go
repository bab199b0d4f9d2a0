package brush

import (
	"math"
	"math/rand/v2"

	"github.com/fogleman/gg"

	"chalk/internal/geom"
)

// Engine renders segments. It keeps no state between calls other than the
// random source used for spray dabs.
type Engine struct {
	rnd func() float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the random source. f must return values in [0, 1).
func WithRand(f func() float64) Option {
	return func(e *Engine) {
		if f != nil {
			e.rnd = f
		}
	}
}

// NewEngine returns an engine drawing spray dabs from math/rand/v2.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{rnd: rand.Float64}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ApplySegment draws the segment from -> to with c. The first segment of a
// gesture has from == to and produces a dot (or a spray burst).
//
// Dashed segments are stroked as independent paths, so the dash phase
// restarts at every segment boundary instead of running along the whole
// gesture.
func (e *Engine) ApplySegment(dc *gg.Context, from, to geom.Point, c Config) {
	if dc == nil {
		return
	}
	Apply(dc, c)

	if c.Style == Spray {
		for _, p := range SprayDabs(to, c.Width, e.rnd) {
			dc.DrawRectangle(p.X, p.Y, 1, 1)
			dc.Fill()
		}
		return
	}

	if from.Eq(to) {
		dc.DrawCircle(to.X, to.Y, c.Width/2)
		dc.Fill()
		return
	}
	dc.MoveTo(from.X, from.Y)
	dc.LineTo(to.X, to.Y)
	dc.Stroke()
}

// ApplyPath strokes points as one continuous path. A single stroke paints
// every pixel once, so translucent marker ink stays even across joints.
func (e *Engine) ApplyPath(dc *gg.Context, points []geom.Point, c Config) {
	if dc == nil || len(points) == 0 {
		return
	}
	if len(points) == 1 {
		e.ApplySegment(dc, points[0], points[0], c)
		return
	}
	Apply(dc, c)
	dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
}

// SprayDabs returns the dab positions of one spray burst around center:
// SprayCount(width) points at uniformly random angle and at a random radius
// below SprayRadius(width).
func SprayDabs(center geom.Point, width float64, rnd func() float64) []geom.Point {
	n := SprayCount(width)
	radius := SprayRadius(width)
	dabs := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		angle := rnd() * 2 * math.Pi
		r := rnd() * radius
		dabs = append(dabs, geom.Point{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		})
	}
	return dabs
}
