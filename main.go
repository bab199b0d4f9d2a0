package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"chalk/internal/brush"
	"chalk/internal/compose"
	"chalk/internal/editor"
	"chalk/internal/logging"
)

func main() {
	cfg, cfgErrs := loadConfig()
	closeLog, err := setupLogging(cfg)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range cfgErrs {
		logging.Logger().Warn("ignoring config entry", "err", e)
	}

	m := initialModel(cfg)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	m.editor.Close()
	closeLog()
	if err != nil {
		log.Fatal(err)
	}
}

// setupLogging sends the package logger to cfg.LogFile. The terminal owns
// stdout, so without a log file logging stays silent.
func setupLogging(cfg *Config) (func(), error) {
	if cfg.LogFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return func() {}, fmt.Errorf("open log file: %w", err)
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return func() {
		logging.SetLogger(nil)
		f.Close()
	}, nil
}

func initialModel(cfg *Config) model {
	paletteIndex := -1
	for i, p := range palette {
		if c, err := parseColor(p.Hex); err == nil && c == cfg.Color {
			paletteIndex = i
			break
		}
	}
	return model{
		editor:       editor.New(cfg.editorConfig()),
		config:       cfg,
		mode:         ModeNormal,
		ink:          cfg.Color,
		paletteIndex: paletteIndex,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case imageDecodedMsg:
		m.successMessage = ""
		if !m.editor.Composite(msg.img) {
			m.errorMessage = "No canvas to paste into"
			return m, nil
		}
		if m.editor.Status().Pending > 0 {
			m.successMessage = "Image queued until the stroke ends"
		} else {
			m.successMessage = "Pasted " + msg.source
		}
		return m, nil

	case decodeFailedMsg:
		logging.Logger().Warn("image not loaded", "source", msg.source, "err", msg.err)
		m.successMessage = ""
		if errors.Is(msg.err, compose.ErrNoImage) {
			m.errorMessage = "No image to paste"
		} else {
			m.errorMessage = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		if m.mode == ModeFileInput {
			return m.handleFileInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// keyCombo normalises ctrl and alt chords for the editor.
func keyCombo(msg tea.KeyMsg) (editor.KeyCombo, bool) {
	switch msg.Type {
	case tea.KeyCtrlZ:
		return editor.KeyCombo{Mod: true, Key: 'z'}, true
	case tea.KeyCtrlY:
		return editor.KeyCombo{Mod: true, Key: 'y'}, true
	case tea.KeyRunes:
		if msg.Alt && len(msg.Runes) == 1 {
			return editor.KeyCombo{Mod: true, Key: msg.Runes[0]}, true
		}
	}
	return editor.KeyCombo{}, false
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	if combo, ok := keyCombo(msg); ok && m.editor.HandleKey(combo) {
		return m, nil
	}

	switch key := msg.String(); key {
	case "ctrl+c", "q":
		m.editor.PointerCancel()
		return m, tea.Quit
	case "u":
		m.undo()
	case "U":
		m.redo()
	case "ctrl+v":
		m.successMessage = "Pasting..."
		return m, pasteCmd
	case "o":
		m.mode = ModeFileInput
		m.filename = ""
	case "1", "2", "3", "4":
		style := brush.Styles[key[0]-'1']
		m.updateBrush(func(b *brush.Config) { b.Style = style })
	case "[":
		m.adjustWidth(-widthStep)
	case "]":
		m.adjustWidth(widthStep)
	case "{":
		m.adjustWidth(-widthStepFast)
	case "}":
		m.adjustWidth(widthStepFast)
	case "c":
		m.cycleColor()
	case "p":
		m.setPen()
	case "e":
		m.setEraser()
	case "esc":
		if m.editor.Status().Drawing {
			m.editor.PointerCancel()
			m.successMessage = "Stroke cancelled"
		}
	case "?":
		m.help = true
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) handleFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
	case tea.KeyEnter:
		path := strings.TrimSpace(m.filename)
		m.mode = ModeNormal
		m.filename = ""
		if path == "" {
			return m, nil
		}
		m.errorMessage = ""
		m.successMessage = "Loading " + path
		return m, openFileCmd(path)
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.filename += " "
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) updateBrush(change func(*brush.Config)) {
	b := m.editor.Brush()
	change(&b)
	if err := m.editor.SetBrush(b); err != nil {
		m.errorMessage = err.Error()
	}
}

func (m *model) adjustWidth(delta float64) {
	m.updateBrush(func(b *brush.Config) { b.Width = clampWidth(b.Width + delta) })
}

func (m *model) cycleColor() {
	m.paletteIndex = (m.paletteIndex + 1) % len(palette)
	c, err := parseColor(palette[m.paletteIndex].Hex)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.ink = c
	m.erasing = false
	m.updateBrush(func(b *brush.Config) { b.Color = c })
}

func (m *model) setPen() {
	m.erasing = false
	m.updateBrush(func(b *brush.Config) { b.Color = m.ink })
}

func (m *model) setEraser() {
	m.erasing = true
	bg := m.editor.Background()
	m.updateBrush(func(b *brush.Config) { b.Color = bg })
}
