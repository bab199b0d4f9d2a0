package main

import (
	"image"
	"image/color"

	"chalk/internal/editor"
)

type model struct {
	width          int
	height         int
	editor         *editor.Editor
	config         *Config
	mode           Mode
	help           bool
	helpScroll     int
	paletteIndex   int
	ink            color.NRGBA // pen colour restored when leaving the eraser
	erasing        bool
	filename       string
	errorMessage   string
	successMessage string
}

// imageDecodedMsg carries an image decoded off the update loop.
type imageDecodedMsg struct {
	img    image.Image
	source string
}

type decodeFailedMsg struct {
	err    error
	source string
}
