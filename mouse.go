package main

import tea "github.com/charmbracelet/bubbletea"

// canvasRows is the number of terminal rows showing the canvas.
func (m *model) canvasRows() int {
	rows := m.height - statusRows
	if rows < 0 {
		return 0
	}
	return rows
}

func (m *model) insideCanvas(col, row int) bool {
	return col >= 0 && col < m.width && row >= 0 && row < m.canvasRows()
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.help || m.mode != ModeNormal {
		return
	}
	p := cellCenter(msg.X, msg.Y)
	inside := m.insideCanvas(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if tea.MouseEvent(msg).IsWheel() || !inside {
			return
		}
		if m.editor.PointerDown(p, msg.Button == tea.MouseButtonLeft) {
			m.errorMessage = ""
			m.successMessage = ""
		}
	case tea.MouseActionMotion:
		if !m.editor.Status().Drawing {
			return
		}
		if !inside {
			m.editor.PointerLeave()
			return
		}
		m.editor.PointerMove(p)
	case tea.MouseActionRelease:
		m.editor.PointerUp()
	}
}

// resize propagates a terminal size to the editor. Each cell is
// CellWidth x CellHeight backing pixels.
func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	rows := m.canvasRows()
	m.editor.SetDisplay(displayRect(width, rows))
	m.editor.Resize(width*m.config.CellWidth, rows*m.config.CellHeight)
}
