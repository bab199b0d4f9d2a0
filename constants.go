package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
)

const (
	defaultCellWidth  = 4
	defaultCellHeight = 8
	maxCellSize       = 64
	statusRows        = 1
	widthStep         = 1
	widthStepFast     = 5
)

// halfBlock paints the top half of a cell in the foreground colour and the
// bottom half in the background colour, giving two pixels per cell.
const halfBlock = "▀"

type paletteEntry struct {
	Name string
	Hex  string
}

var palette = []paletteEntry{
	{"black", "#000000"},
	{"white", "#ffffff"},
	{"red", "#e53935"},
	{"orange", "#fb8c00"},
	{"yellow", "#fdd835"},
	{"blue", "#1e88e5"},
	{"purple", "#8e24aa"},
	{"pink", "#f06292"},
}
