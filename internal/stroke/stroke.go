// Package stroke implements the per-gesture state machine that feeds pointer
// movement into the brush engine.
package stroke

import (
	"github.com/fogleman/gg"

	"chalk/internal/brush"
	"chalk/internal/geom"
	"chalk/internal/logging"
)

// State is the session state.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Target is the surface a session paints into.
type Target interface {
	// Context returns the drawing context, or nil when unavailable.
	Context() *gg.Context
	// Commit appends the current raster to history.
	Commit() bool
	// RestoreCurrent puts the snapshot at the history cursor back.
	RestoreCurrent() bool
}

// Session tracks one gesture at a time: Idle -> Drawing on a primary
// pointer-down, back to Idle on up, leave or cancel.
type Session struct {
	target Target
	engine *brush.Engine

	state    State
	last     geom.Point
	segments int

	// path holds the marker gesture, repainted whole on every move.
	path      []geom.Point
	pathBrush brush.Config
}

// New returns an idle session painting into t with e.
func New(t Target, e *brush.Engine) *Session {
	if e == nil {
		e = brush.NewEngine()
	}
	return &Session{target: t, engine: e}
}

func (s *Session) State() State  { return s.state }
func (s *Session) Drawing() bool { return s.state == Drawing }

// Segments returns how many segments the current or last gesture applied.
func (s *Session) Segments() int { return s.segments }

// Last returns the last recorded point while drawing.
func (s *Session) Last() (geom.Point, bool) {
	return s.last, s.state == Drawing
}

// Down starts a gesture at p. Secondary buttons, a gesture already in
// progress and a missing drawing context all leave the session untouched.
// The start point is painted immediately so a tap leaves a mark.
func (s *Session) Down(p geom.Point, primary bool, c brush.Config) bool {
	if !primary || s.state == Drawing {
		return false
	}
	dc := s.target.Context()
	if dc == nil {
		logging.Logger().Debug("stroke: no drawing context, ignoring pointer down")
		return false
	}
	dc.ClearPath()
	s.state = Drawing
	s.last = p
	s.segments = 1
	s.path = nil
	if c.Style == brush.Marker {
		s.path = []geom.Point{p}
		s.pathBrush = c
	}
	s.engine.ApplySegment(dc, p, p, c)
	return true
}

// Move extends the gesture to p. It is a no-op while idle. Marker gestures
// restore the current snapshot and restroke the whole path until the brush
// changes, after which segments are drawn one at a time.
func (s *Session) Move(p geom.Point, c brush.Config) bool {
	if s.state != Drawing {
		return false
	}
	dc := s.target.Context()
	if dc == nil {
		return false
	}
	if s.path != nil && c == s.pathBrush {
		s.path = append(s.path, p)
		s.target.RestoreCurrent()
		s.engine.ApplyPath(dc, s.path, c)
	} else {
		s.path = nil
		s.engine.ApplySegment(dc, s.last, p, c)
	}
	s.last = p
	s.segments++
	return true
}

// Up ends the gesture and commits the raster.
func (s *Session) Up() bool { return s.finish(true) }

// Leave ends the gesture when the pointer leaves the surface and commits
// the raster.
func (s *Session) Leave() bool { return s.finish(true) }

// Cancel aborts the gesture without committing. The partial stroke is
// removed by restoring the current snapshot.
func (s *Session) Cancel() bool { return s.finish(false) }

func (s *Session) finish(commit bool) bool {
	if s.state != Drawing {
		return false
	}
	s.state = Idle
	s.path = nil
	if dc := s.target.Context(); dc != nil {
		dc.ClearPath()
	}
	if commit {
		return s.target.Commit()
	}
	s.target.RestoreCurrent()
	logging.Logger().Debug("stroke: gesture cancelled", "segments", s.segments)
	return false
}
