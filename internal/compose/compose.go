// Package compose draws external images onto the canvas.
//
// An image is scaled uniformly to fit the backing store, centred, drawn over
// the current raster and committed to history as one step.
package compose

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"chalk/internal/logging"
)

// Target is the surface images are composited onto.
type Target interface {
	// Raster returns the live pixel buffer, or nil when unavailable.
	Raster() *image.RGBA
	// Commit appends the current raster to history.
	Commit() bool
}

// Fit returns the destination rectangle of an iw x ih image scaled by
// min(cw/iw, ch/ih) and centred on a cw x ch canvas. ok is false when either
// size is empty.
func Fit(cw, ch, iw, ih int) (dst image.Rectangle, scale float64, ok bool) {
	if cw <= 0 || ch <= 0 || iw <= 0 || ih <= 0 {
		return image.Rectangle{}, 0, false
	}
	scale = math.Min(float64(cw)/float64(iw), float64(ch)/float64(ih))
	w := float64(iw) * scale
	h := float64(ih) * scale
	x := float64(cw)/2 - w/2
	y := float64(ch)/2 - h/2
	dst = image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	return dst, scale, true
}

// Compositor draws images onto a Target.
type Compositor struct {
	target Target
	scaler xdraw.Scaler
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithScaler sets the resampling kernel. The default is Catmull-Rom.
func WithScaler(s xdraw.Scaler) Option {
	return func(c *Compositor) {
		if s != nil {
			c.scaler = s
		}
	}
}

// New returns a compositor drawing onto t.
func New(t Target, opts ...Option) *Compositor {
	c := &Compositor{target: t, scaler: xdraw.CatmullRom}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Composite fits img onto the raster and commits the result. It returns
// false, drawing nothing, when the target has no raster (not yet measured or
// already torn down) or img is empty.
func (c *Compositor) Composite(img image.Image) bool {
	log := logging.Logger()
	dst := c.target.Raster()
	if dst == nil || img == nil {
		log.Debug("compose: no surface, dropping image")
		return false
	}
	sb := img.Bounds()
	r, scale, ok := Fit(dst.Bounds().Dx(), dst.Bounds().Dy(), sb.Dx(), sb.Dy())
	if !ok || r.Empty() {
		log.Debug("compose: nothing to draw", "src", sb, "dst", dst.Bounds())
		return false
	}
	c.scaler.Scale(dst, r, img, sb, xdraw.Over, nil)
	log.Info("compose: image composited", "src", sb.Size(), "dst", r, "scale", scale)
	return c.target.Commit()
}
