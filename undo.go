package main

func (m *model) undo() {
	if !m.editor.Undo() {
		m.errorMessage = "Nothing to undo"
		return
	}
	m.successMessage = "Undo"
}

func (m *model) redo() {
	if !m.editor.Redo() {
		m.errorMessage = "Nothing to redo"
		return
	}
	m.successMessage = "Redo"
}
