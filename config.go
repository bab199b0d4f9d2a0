package main

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"chalk/internal/brush"
	"chalk/internal/editor"
	"chalk/internal/surface"
)

type Config struct {
	Background   color.NRGBA
	Color        color.NRGBA
	Width        float64
	Style        brush.Style
	CellWidth    int
	CellHeight   int
	HistoryLimit int
	Scaler       string
	LogFile      string
	LogLevel     slog.Level
}

func defaultConfig() *Config {
	b := brush.Default()
	return &Config{
		Background: surface.DefaultBackground,
		Color:      b.Color,
		Width:      b.Width,
		Style:      b.Style,
		CellWidth:  defaultCellWidth,
		CellHeight: defaultCellHeight,
		Scaler:     "bilinear",
		LogLevel:   slog.LevelInfo,
	}
}

// loadConfig reads ~/.chalkrc. A missing file yields the defaults; bad lines
// are returned as errors and otherwise ignored.
func loadConfig() (*Config, []error) {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config, nil
	}

	configPath := filepath.Join(homeDir, ".chalkrc")
	file, err := os.Open(configPath)
	if err != nil {
		return config, nil
	}
	defer file.Close()

	return config, parseConfig(file, homeDir, config)
}

func parseConfig(r io.Reader, homeDir string, config *Config) []error {
	var errs []error
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			errs = append(errs, fmt.Errorf("line %d: expected key = value", lineNo))
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if err := config.set(key, value, homeDir); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("read config: %w", err))
	}
	return errs
}

func (c *Config) set(key, value, homeDir string) error {
	switch strings.ToLower(key) {
	case "background", "bg", "background_color":
		col, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		c.Background = col
	case "color", "colour", "ink":
		col, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("color: %w", err)
		}
		c.Color = col
	case "width", "brush_width", "size":
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("width: %w", err)
		}
		if w < brush.MinWidth || w > brush.MaxWidth {
			return fmt.Errorf("width: %w: %v outside %d..%d", brush.ErrInvalidWidth, w, brush.MinWidth, brush.MaxWidth)
		}
		c.Width = w
	case "style", "brush", "brush_style":
		s, err := brush.ParseStyle(value)
		if err != nil {
			return err
		}
		c.Style = s
	case "cell_width", "cellwidth":
		n, err := parseCellSize(value)
		if err != nil {
			return fmt.Errorf("cell_width: %w", err)
		}
		c.CellWidth = n
	case "cell_height", "cellheight":
		n, err := parseCellSize(value)
		if err != nil {
			return fmt.Errorf("cell_height: %w", err)
		}
		c.CellHeight = n
	case "history_limit", "historylimit", "undo_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("history_limit: invalid value %q", value)
		}
		c.HistoryLimit = n
	case "scaler", "resample":
		if _, err := surface.ParseScaler(value); err != nil {
			return err
		}
		c.Scaler = strings.ToLower(value)
	case "log_file", "logfile", "log":
		if strings.HasPrefix(value, "~") {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
		if !filepath.IsAbs(value) {
			if absPath, err := filepath.Abs(value); err == nil {
				value = absPath
			}
		}
		c.LogFile = value
	case "log_level", "loglevel":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
		c.LogLevel = lvl
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func parseCellSize(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > maxCellSize {
		return 0, fmt.Errorf("%d outside 1..%d", n, maxCellSize)
	}
	return n, nil
}

// parseColor accepts a palette name, #rgb or #rrggbb.
func parseColor(value string) (color.NRGBA, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, p := range palette {
		if p.Name == value {
			value = p.Hex
			break
		}
	}
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func (c *Config) brushConfig() brush.Config {
	return brush.Config{Style: c.Style, Color: c.Color, Width: c.Width}
}

func (c *Config) editorConfig() editor.Config {
	ec := editor.DefaultConfig()
	ec.Background = c.Background
	ec.Brush = c.brushConfig()
	ec.HistoryLimit = c.HistoryLimit
	if s, err := surface.ParseScaler(c.Scaler); err == nil {
		ec.RestoreScaler = s
	}
	return ec
}
