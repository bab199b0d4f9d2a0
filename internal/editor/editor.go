// Package editor ties the drawing engine together into one editor instance.
//
// An Editor owns its history, backing store, stroke session and compositor
// from New until Close. The host feeds it already-normalised input: pointer
// positions in device space, key combinations, container sizes and decoded
// images. Every mutation happens on the caller's goroutine; the editor does
// no locking and must not be shared between goroutines.
package editor

import (
	"image"
	"image/color"
	"unicode"

	xdraw "golang.org/x/image/draw"

	"chalk/internal/brush"
	"chalk/internal/compose"
	"chalk/internal/geom"
	"chalk/internal/history"
	"chalk/internal/logging"
	"chalk/internal/stroke"
	"chalk/internal/surface"
)

// Config holds the construction parameters of an Editor.
type Config struct {
	Background   color.NRGBA
	Brush        brush.Config
	HistoryLimit int
	// RestoreScaler stretches snapshots after a resize. Nil means bilinear.
	RestoreScaler xdraw.Scaler
	// CompositeScaler resamples external images. Nil means Catmull-Rom.
	CompositeScaler xdraw.Scaler
	// Rand feeds the spray brush. Nil means math/rand/v2.
	Rand func() float64
}

// DefaultConfig returns the chalkboard defaults.
func DefaultConfig() Config {
	return Config{
		Background: surface.DefaultBackground,
		Brush:      brush.Default(),
	}
}

// KeyCombo is a normalised key press. Mod is true when the platform's
// command modifier (ctrl or meta) was held.
type KeyCombo struct {
	Mod bool
	Key rune
}

// Status is what the host needs to draw its controls.
type Status struct {
	CanUndo   bool
	CanRedo   bool
	Drawing   bool
	Width     int
	Height    int
	Snapshots int
	Pending   int
	Brush     brush.Config
}

// Editor is one drawing surface with its undo history.
type Editor struct {
	hist    *history.Store
	surf    *surface.Manager
	session *stroke.Session
	comp    *compose.Compositor

	brush   brush.Config
	display geom.Rect
	pending []image.Image
	closed  bool
}

// New creates an editor. The backing store is allocated by the first Resize.
func New(cfg Config) *Editor {
	if cfg.Brush.Validate() != nil {
		cfg.Brush = brush.Default()
	}
	if cfg.Background.A == 0 {
		cfg.Background = surface.DefaultBackground
	}

	e := &Editor{brush: cfg.Brush}
	e.hist = history.New(history.WithLimit(cfg.HistoryLimit))
	e.surf = surface.New(e.hist,
		surface.WithBackground(cfg.Background),
		surface.WithScaler(cfg.RestoreScaler),
		surface.WithBrush(e.Brush),
	)
	var engineOpts []brush.Option
	if cfg.Rand != nil {
		engineOpts = append(engineOpts, brush.WithRand(cfg.Rand))
	}
	e.session = stroke.New(e.surf, brush.NewEngine(engineOpts...))
	e.comp = compose.New(e.surf, compose.WithScaler(cfg.CompositeScaler))
	return e
}

// Resize reports a new container measurement in backing-store pixels. A
// stroke in progress is cancelled before the backing store is reallocated.
func (e *Editor) Resize(w, h int) bool {
	if e.closed {
		return false
	}
	next := surface.State{Width: w, Height: h}
	if e.session.Drawing() && !next.Empty() && next != e.surf.State() {
		logging.Logger().Debug("editor: resize cancels the stroke in progress", "width", w, "height", h)
		e.PointerCancel()
	}
	return e.surf.Resize(w, h)
}

// SetDisplay records where the surface is shown, in device units. It is used
// to map pointer positions onto the backing store.
func (e *Editor) SetDisplay(r geom.Rect) {
	e.display = r
}

// Display returns the rectangle set by SetDisplay.
func (e *Editor) Display() geom.Rect {
	return e.display
}

func (e *Editor) toBacking(device geom.Point) (geom.Point, bool) {
	st := e.surf.State()
	p, ok := geom.MapToBacking(device, e.display, st.Width, st.Height)
	if !ok {
		logging.Logger().Debug("editor: unmappable pointer event", "device", device, "display", e.display)
	}
	return p, ok
}

// PointerDown starts a stroke at a device position. Only the primary
// button or first touch starts a stroke.
func (e *Editor) PointerDown(device geom.Point, primary bool) bool {
	if e.closed {
		return false
	}
	p, ok := e.toBacking(device)
	if !ok {
		return false
	}
	return e.session.Down(p, primary, e.brush)
}

// PointerMove extends the current stroke. Moves while idle are ignored.
func (e *Editor) PointerMove(device geom.Point) bool {
	if e.closed || !e.session.Drawing() {
		return false
	}
	p, ok := e.toBacking(device)
	if !ok {
		return false
	}
	return e.session.Move(p, e.brush)
}

// PointerUp ends the stroke and commits it.
func (e *Editor) PointerUp() bool {
	return e.endGesture(e.session.Up)
}

// PointerLeave ends the stroke when the pointer leaves the surface and
// commits it.
func (e *Editor) PointerLeave() bool {
	return e.endGesture(e.session.Leave)
}

// PointerCancel aborts the stroke without committing it.
func (e *Editor) PointerCancel() bool {
	return e.endGesture(e.session.Cancel)
}

func (e *Editor) endGesture(end func() bool) bool {
	if e.closed {
		return false
	}
	wasDrawing := e.session.Drawing()
	committed := end()
	if wasDrawing {
		e.flushPending()
	}
	return committed
}

// Undo steps back one snapshot and restores it. It is ignored at the start
// of history and while a stroke is in progress.
func (e *Editor) Undo() bool {
	if e.closed || e.session.Drawing() {
		return false
	}
	snap, ok := e.hist.Undo()
	if !ok {
		return false
	}
	return e.surf.Restore(snap)
}

// Redo steps forward one snapshot and restores it. It is ignored at the end
// of history and while a stroke is in progress.
func (e *Editor) Redo() bool {
	if e.closed || e.session.Drawing() {
		return false
	}
	snap, ok := e.hist.Redo()
	if !ok {
		return false
	}
	return e.surf.Restore(snap)
}

// HandleKey dispatches modifier+Z to Undo and modifier+Y to Redo. It
// reports whether the combination was consumed.
func (e *Editor) HandleKey(k KeyCombo) bool {
	if !k.Mod {
		return false
	}
	switch unicode.ToLower(k.Key) {
	case 'z':
		e.Undo()
		return true
	case 'y':
		e.Redo()
		return true
	}
	return false
}

// Composite fits img onto the canvas and commits it. While a stroke is in
// progress the image is queued and composited right after that stroke is
// committed, so a composite never interleaves with a gesture. It reports
// whether the image was accepted.
func (e *Editor) Composite(img image.Image) bool {
	if e.closed || img == nil {
		return false
	}
	if e.session.Drawing() {
		e.pending = append(e.pending, img)
		logging.Logger().Debug("editor: composite queued behind stroke", "pending", len(e.pending))
		return true
	}
	return e.comp.Composite(img)
}

func (e *Editor) flushPending() {
	queued := e.pending
	e.pending = nil
	for _, img := range queued {
		e.comp.Composite(img)
	}
}

// SetBrush replaces the brush. It takes effect on the next segment.
func (e *Editor) SetBrush(c brush.Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e.brush = c
	e.surf.Reconfigure()
	return nil
}

// Brush returns the current brush.
func (e *Editor) Brush() brush.Config {
	return e.brush
}

// Background returns the colour of a blank canvas.
func (e *Editor) Background() color.NRGBA {
	return e.surf.Background()
}

// Status summarises the editor for the host's controls.
func (e *Editor) Status() Status {
	st := e.surf.State()
	return Status{
		CanUndo:   e.hist.CanUndo(),
		CanRedo:   e.hist.CanRedo(),
		Drawing:   e.session.Drawing(),
		Width:     st.Width,
		Height:    st.Height,
		Snapshots: e.hist.Len(),
		Pending:   len(e.pending),
		Brush:     e.brush,
	}
}

// Image returns the live raster for display, or nil before the first
// measurement and after Close. Callers must not modify it.
func (e *Editor) Image() image.Image {
	if r := e.surf.Raster(); r != nil {
		return r
	}
	return nil
}

// Close tears the editor down. Pending composites are dropped and every
// later call is a no-op.
func (e *Editor) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.pending = nil
	e.surf.Close()
	e.hist.Reset()
	logging.Logger().Info("editor: closed")
}

// Closed reports whether Close was called.
func (e *Editor) Closed() bool {
	return e.closed
}
