// Package brush turns pointer path segments into raster operations.
//
// Four styles are supported: a continuous solid line, a dashed line, a
// translucent marker and a stochastic spray. All of them paint straight into
// the backing store through a gg.Context; none of them read history.
package brush

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

// Style selects how a segment is rendered.
type Style int

const (
	Solid Style = iota
	Dashed
	Marker
	Spray
)

// Styles lists every style in picker order.
var Styles = []Style{Solid, Dashed, Marker, Spray}

func (s Style) String() string {
	switch s {
	case Solid:
		return "solid"
	case Dashed:
		return "dashed"
	case Marker:
		return "marker"
	case Spray:
		return "spray"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

var (
	ErrUnknownStyle = errors.New("brush: unknown style")
	ErrInvalidWidth = errors.New("brush: width must be positive")
)

// ParseStyle parses a style name as produced by Style.String.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "solid":
		return Solid, nil
	case "dashed", "dash":
		return Dashed, nil
	case "marker":
		return Marker, nil
	case "spray", "airbrush":
		return Spray, nil
	}
	return Solid, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

const (
	// MarkerAlpha is the opacity factor applied to marker strokes.
	MarkerAlpha = 0.3

	MinWidth = 1
	MaxWidth = 50

	dashFactor    = 2.0
	gapFactor     = 1.5
	sprayDensity  = 2.0
	sprayRadiusBy = 1.5
)

// Config is the brush as chosen in the host's pickers. It is passed by value;
// a change only affects segments drawn after it.
type Config struct {
	Style Style
	Color color.NRGBA
	Width float64
}

// Default returns a 5px solid black brush.
func Default() Config {
	return Config{
		Style: Solid,
		Color: color.NRGBA{A: 0xff},
		Width: 5,
	}
}

// Validate reports whether c can be drawn with.
func (c Config) Validate() error {
	if c.Width <= 0 || math.IsNaN(c.Width) || math.IsInf(c.Width, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, c.Width)
	}
	if c.Style < Solid || c.Style > Spray {
		return fmt.Errorf("%w: %d", ErrUnknownStyle, int(c.Style))
	}
	return nil
}

// Paint returns the effective colour written by c, including marker
// translucency.
func (c Config) Paint() color.NRGBA {
	p := c.Color
	if c.Style == Marker {
		p.A = uint8(math.Round(float64(p.A) * MarkerAlpha))
	}
	return p
}

// DashPattern returns the on/off lengths used by the dashed style.
func DashPattern(width float64) []float64 {
	return []float64{width * dashFactor, width * gapFactor}
}

// SprayRadius is the maximum distance of a spray dab from its centre.
func SprayRadius(width float64) float64 {
	return width * sprayRadiusBy
}

// SprayCount is the number of dabs deposited per spray invocation.
func SprayCount(width float64) int {
	n := int(math.Round(width * sprayDensity))
	if n < 1 {
		n = 1
	}
	return n
}

// Apply pushes c into dc: round caps and joins, colour, width, dash pattern
// and marker alpha. It must be called again whenever dc is recreated, since
// a fresh context starts from gg's defaults.
func Apply(dc *gg.Context, c Config) {
	if dc == nil {
		return
	}
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.SetLineWidth(c.Width)
	dc.SetColor(c.Paint())
	if c.Style == Dashed {
		dc.SetDash(DashPattern(c.Width)...)
	} else {
		dc.SetDash()
	}
}
