package main

import (
	"errors"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	xdraw "golang.org/x/image/draw"

	"chalk/internal/brush"
)

func TestParseConfig(t *testing.T) {
	input := `
# chalk settings
Background = #202020
colour = red
width = 12.5
style = marker
cell_width = 2
cellheight = 4
history_limit = 100
scaler = Nearest
log_file = ~/logs/chalk.log
log_level = debug
`
	cfg := defaultConfig()
	if errs := parseConfig(strings.NewReader(input), "/home/chalk", cfg); len(errs) != 0 {
		t.Fatalf("parseConfig() errors = %v", errs)
	}

	want := &Config{
		Background:   color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
		Color:        color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
		Width:        12.5,
		Style:        brush.Marker,
		CellWidth:    2,
		CellHeight:   4,
		HistoryLimit: 100,
		Scaler:       "nearest",
		LogFile:      "/home/chalk/logs/chalk.log",
		LogLevel:     slog.LevelDebug,
	}
	if *cfg != *want {
		t.Errorf("parseConfig() = %+v\nwant %+v", *cfg, *want)
	}
}

func TestParseConfigKeepsDefaultsOnBadValues(t *testing.T) {
	input := `width = 80
style = crayon
cell_width = 0
history_limit = -1
scaler = lanczos
color = #nothex
log_level = loud
no equals sign
favourite = blue
`
	cfg := defaultConfig()
	errs := parseConfig(strings.NewReader(input), "/home/chalk", cfg)
	if len(errs) != 9 {
		t.Errorf("parseConfig() returned %d errors, want 9: %v", len(errs), errs)
	}
	if *cfg != *defaultConfig() {
		t.Errorf("bad values changed the config: %+v", *cfg)
	}

	var widthErr, styleErr bool
	for _, err := range errs {
		widthErr = widthErr || errors.Is(err, brush.ErrInvalidWidth)
		styleErr = styleErr || errors.Is(err, brush.ErrUnknownStyle)
	}
	if !widthErr || !styleErr {
		t.Errorf("errors should wrap the brush sentinels: %v", errs)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{" Red ", color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 255}, false},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"00a63e", color.NRGBA{R: 0x00, G: 0xa6, B: 0x3e, A: 255}, false},
		{"chartreuse-ish", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEditorConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Scaler = "nearest"
	cfg.HistoryLimit = 7
	cfg.Style = brush.Spray

	ec := cfg.editorConfig()
	if ec.RestoreScaler != xdraw.NearestNeighbor {
		t.Errorf("RestoreScaler = %v, want nearest neighbour", ec.RestoreScaler)
	}
	if ec.HistoryLimit != 7 || ec.Brush.Style != brush.Spray || ec.Background != cfg.Background {
		t.Errorf("editorConfig() = %+v", ec)
	}
}
