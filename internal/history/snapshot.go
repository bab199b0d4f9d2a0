package history

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Snapshot is an immutable copy of the backing store at one instant.
// It implements image.Image; the underlying buffer is never handed out.
type Snapshot struct {
	rgba *image.RGBA
}

// Capture copies src into a new snapshot. The copy is normalised to start at
// the origin.
func Capture(src *image.RGBA) *Snapshot {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Snapshot{rgba: dst}
}

func (s *Snapshot) ColorModel() color.Model { return color.RGBAModel }
func (s *Snapshot) Bounds() image.Rectangle { return s.rgba.Bounds() }
func (s *Snapshot) At(x, y int) color.Color { return s.rgba.RGBAAt(x, y) }

// Width returns the snapshot width in pixels.
func (s *Snapshot) Width() int { return s.rgba.Bounds().Dx() }

// Height returns the snapshot height in pixels.
func (s *Snapshot) Height() int { return s.rgba.Bounds().Dy() }

// DrawTo paints the snapshot into r of dst, stretching it to fill r with
// scaler. When r has the snapshot's own size the pixels are copied exactly.
func (s *Snapshot) DrawTo(dst draw.Image, r image.Rectangle, scaler xdraw.Scaler) {
	if r.Dx() == s.Width() && r.Dy() == s.Height() {
		draw.Draw(dst, r, s.rgba, image.Point{}, draw.Src)
		return
	}
	scaler.Scale(dst, r, s.rgba, s.rgba.Bounds(), xdraw.Src, nil)
}

// Equal reports whether two snapshots hold identical pixels.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil || s.Bounds() != o.Bounds() {
		return false
	}
	a, b := s.rgba.Pix, o.rgba.Pix
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SizeBytes is the memory held by the pixel buffer.
func (s *Snapshot) SizeBytes() int { return len(s.rgba.Pix) }
