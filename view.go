package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

var (
	statusStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f"))
	helpTitle   = lipgloss.NewStyle().Bold(true)
)

var helpLines = []string{
	"Chalk Help",
	"==========",
	"",
	"Drawing:",
	"--------",
	"  Left mouse       Draw (press, drag, release)",
	"  Esc              Cancel the stroke in progress",
	"  1 / 2 / 3 / 4    Solid / dashed / marker / spray",
	"  [ / ]            Thinner / thicker brush",
	"  { / }            Thinner / thicker brush, 5 at a time",
	"  c                Cycle ink colour",
	"  p                Pen (last ink colour)",
	"  e                Eraser (background colour)",
	"",
	"Images:",
	"-------",
	"  Ctrl+V           Paste an image path or data:image URI from the clipboard",
	"  o                Open an image file",
	"                   Images are scaled to fit and centred on the board",
	"",
	"History:",
	"--------",
	"  u / Ctrl+Z       Undo",
	"  U / Ctrl+Y       Redo",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	rows := m.canvasRows()
	lines := renderCanvas(m.editor.Image(), m.width, rows)

	var result strings.Builder
	for _, line := range lines {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

// renderCanvas downsamples src to two pixels per cell and draws each cell as
// a half block. Runs of identical cells share one styled string.
func renderCanvas(src image.Image, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	lines := make([]string, rows)
	if src == nil || src.Bounds().Empty() {
		for y := range lines {
			lines[y] = strings.Repeat(" ", cols)
		}
		return lines
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	for y := 0; y < rows; y++ {
		var b strings.Builder
		for x := 0; x < cols; {
			top, bottom := dst.RGBAAt(x, 2*y), dst.RGBAAt(x, 2*y+1)
			run := 1
			for x+run < cols && dst.RGBAAt(x+run, 2*y) == top && dst.RGBAAt(x+run, 2*y+1) == bottom {
				run++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			b.WriteString(style.Render(strings.Repeat(halfBlock, run)))
			x += run
		}
		lines[y] = b.String()
	}
	return lines
}

func hexColor(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

func (m model) colorName() string {
	if m.erasing {
		return "eraser"
	}
	c := m.editor.Brush().Color
	if m.paletteIndex >= 0 && m.paletteIndex < len(palette) {
		if p, err := parseColor(palette[m.paletteIndex].Hex); err == nil && p == c {
			return palette[m.paletteIndex].Name
		}
	}
	return hexColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
}

func (m model) statusLine() string {
	if m.mode == ModeFileInput {
		return statusStyle.MaxWidth(m.width).Render("Open image: " + m.filename + "_  (Enter to load, Esc to cancel)")
	}

	st := m.editor.Status()
	status := fmt.Sprintf("%s | %s | w%g | %dx%d", st.Brush.Style, m.colorName(), st.Brush.Width, st.Width, st.Height)
	switch {
	case st.CanUndo && st.CanRedo:
		status += " | undo redo"
	case st.CanUndo:
		status += " | undo"
	case st.CanRedo:
		status += " | redo"
	}
	if st.Drawing {
		status += " | drawing"
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		line := statusStyle.Render(status+" | ") + errorStyle.Render("ERROR: "+m.errorMessage)
		return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return statusStyle.MaxWidth(m.width).Render(status)
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = len(helpLines) - visibleHeight
	}
	if startLine < 0 {
		startLine = 0
	}
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	visible := append([]string(nil), helpLines[startLine:endLine]...)
	if startLine == 0 && len(visible) > 0 {
		visible[0] = helpTitle.Render(visible[0])
	}
	result := strings.Join(visible, "\n")

	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
