// Package surface owns the backing store and keeps it coherent across
// container resizes.
//
// A resize reallocates the pixel buffer, which clears it, and then restores
// the snapshot at the history cursor stretched to the new size. The very
// first valid measurement on an empty history fills the store with the
// background colour and commits that as snapshot 0 instead.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"chalk/internal/brush"
	"chalk/internal/history"
	"chalk/internal/logging"
)

// DefaultBackground is the chalkboard green.
var DefaultBackground = color.NRGBA{R: 0x00, G: 0xa6, B: 0x3e, A: 0xff}

// State is the current backing-store size. It is replaced, never mutated.
type State struct {
	Width, Height int
}

// Empty reports whether the store has no pixels.
func (s State) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Manager owns the backing store of one editor.
type Manager struct {
	hist   *history.Store
	brush  func() brush.Config
	bg     color.NRGBA
	scaler xdraw.Scaler

	state  State
	img    *image.RGBA
	dc     *gg.Context
	closed bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackground sets the colour of a blank canvas.
func WithBackground(c color.NRGBA) Option {
	return func(m *Manager) { m.bg = c }
}

// WithScaler sets the kernel used to stretch snapshots on restore.
func WithScaler(s xdraw.Scaler) Option {
	return func(m *Manager) {
		if s != nil {
			m.scaler = s
		}
	}
}

// WithBrush sets the source of the brush configuration reapplied after every
// reallocation.
func WithBrush(f func() brush.Config) Option {
	return func(m *Manager) {
		if f != nil {
			m.brush = f
		}
	}
}

// New returns a manager with no backing store yet; it is allocated by the
// first Resize with a non-zero size.
func New(hist *history.Store, opts ...Option) *Manager {
	m := &Manager{
		hist:   hist,
		brush:  brush.Default,
		bg:     DefaultBackground,
		scaler: xdraw.BiLinear,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) State() State            { return m.state }
func (m *Manager) Background() color.NRGBA { return m.bg }
func (m *Manager) Closed() bool            { return m.closed }
func (m *Manager) History() *history.Store { return m.hist }
func (m *Manager) Scaler() xdraw.Scaler    { return m.scaler }
func (m *Manager) Ready() bool             { return !m.closed && m.img != nil }

// Context returns the drawing context, or nil before the first allocation
// and after Close.
func (m *Manager) Context() *gg.Context {
	if !m.Ready() {
		return nil
	}
	return m.dc
}

// Raster returns the live pixel buffer, or nil when unavailable.
func (m *Manager) Raster() *image.RGBA {
	if !m.Ready() {
		return nil
	}
	return m.img
}

// Resize reacts to a new container measurement. It reports whether the
// backing store was reallocated. Zero sizes are deferred until a valid
// measurement arrives.
func (m *Manager) Resize(w, h int) bool {
	log := logging.Logger()
	if m.closed {
		return false
	}
	next := State{Width: w, Height: h}
	if next.Empty() {
		log.Debug("surface: deferring resize to empty size", "width", w, "height", h)
		return false
	}
	if next == m.state && m.img != nil {
		return false
	}

	m.img = image.NewRGBA(image.Rect(0, 0, w, h))
	m.dc = gg.NewContextForRGBA(m.img)
	m.state = next

	if cur := m.hist.Current(); cur != nil {
		cur.DrawTo(m.img, m.img.Bounds(), m.scaler)
		log.Debug("surface: restored snapshot", "width", w, "height", h, "cursor", m.hist.Cursor())
	} else {
		m.dc.SetColor(m.bg)
		m.dc.Clear()
		m.hist.Commit(history.Capture(m.img))
		log.Info("surface: initial blank snapshot", "width", w, "height", h)
	}
	m.Reconfigure()
	return true
}

// Restore replaces the raster with snap stretched to the current size.
func (m *Manager) Restore(snap *history.Snapshot) bool {
	if !m.Ready() || snap == nil {
		return false
	}
	snap.DrawTo(m.img, m.img.Bounds(), m.scaler)
	return true
}

// RestoreCurrent restores the snapshot at the history cursor.
func (m *Manager) RestoreCurrent() bool {
	return m.Restore(m.hist.Current())
}

// Snapshot captures the raster, or returns nil when unavailable.
func (m *Manager) Snapshot() *history.Snapshot {
	if !m.Ready() {
		return nil
	}
	return history.Capture(m.img)
}

// Commit captures the raster and appends it to history.
func (m *Manager) Commit() bool {
	snap := m.Snapshot()
	if snap == nil {
		return false
	}
	m.hist.Commit(snap)
	return true
}

// Reconfigure reapplies the brush configuration to the drawing context.
func (m *Manager) Reconfigure() {
	brush.Apply(m.Context(), m.brush())
}

// Close tears the backing store down. Later calls are no-ops.
func (m *Manager) Close() {
	m.closed = true
	m.img = nil
	m.dc = nil
	m.state = State{}
}

// ParseScaler maps a kernel name to an x/image/draw scaler.
func ParseScaler(name string) (xdraw.Scaler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nearest", "nearest-neighbor":
		return xdraw.NearestNeighbor, nil
	case "approx-bilinear", "approxbilinear":
		return xdraw.ApproxBiLinear, nil
	case "bilinear", "":
		return xdraw.BiLinear, nil
	case "catmull-rom", "catmullrom", "bicubic":
		return xdraw.CatmullRom, nil
	}
	return nil, fmt.Errorf("surface: unknown scaler %q", name)
}
