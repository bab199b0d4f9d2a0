package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"chalk/internal/brush"
	"chalk/internal/compose"
	"chalk/internal/geom"
	"chalk/internal/logging"
)

// maxImageBytes bounds image files read for compositing.
const maxImageBytes = 64 << 20

var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
		if output, err := exec.Command("pbpaste").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// pasteItemsFromText turns clipboard text into paste items. A data:image URI
// or the path of an image file becomes an image item; anything else stays
// text.
func pasteItemsFromText(text string) ([]compose.PasteItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if strings.HasPrefix(text, "data:") {
		return pasteItemsFromDataURI(text)
	}
	if path, ok := pathFromText(text); ok {
		it, err := readImageFile(path)
		if err != nil {
			return nil, err
		}
		return []compose.PasteItem{it}, nil
	}
	return []compose.PasteItem{{Type: "text/plain", Data: []byte(text)}}, nil
}

func pasteItemsFromDataURI(uri string) ([]compose.PasteItem, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	mediaType, params, _ := strings.Cut(header, ";")
	if mediaType == "" {
		mediaType = "text/plain"
	}
	var data []byte
	if strings.Contains(params, "base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		data = []byte(unescaped)
	}
	return []compose.PasteItem{{Type: strings.ToLower(mediaType), Data: data}}, nil
}

// pathFromText reports whether text names an existing regular file. Quotes,
// file:// prefixes and a leading ~ are accepted, as terminals and file
// managers produce them.
func pathFromText(text string) (string, bool) {
	if strings.ContainsAny(text, "\n\r") {
		return "", false
	}
	p := strings.Trim(text, `"'`)
	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	p = strings.ReplaceAll(p, `\ `, " ")
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return p, true
}

func readImageFile(path string) (compose.PasteItem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return compose.PasteItem{}, fmt.Errorf("open image: %w", err)
	}
	if info.Size() > maxImageBytes {
		return compose.PasteItem{}, fmt.Errorf("open image: %s is larger than %d MiB", filepath.Base(path), maxImageBytes>>20)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return compose.PasteItem{}, fmt.Errorf("open image: %w", err)
	}
	return compose.PasteItem{Type: sniffType(path, data), Name: filepath.Base(path), Data: data}, nil
}

func sniffType(path string, data []byte) string {
	if t := http.DetectContentType(data); strings.HasPrefix(t, "image/") {
		return t
	}
	if t, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return "application/octet-stream"
}

// decodeItemsCmd decodes the first image item off the update loop.
func decodeItemsCmd(items []compose.PasteItem, source string) tea.Cmd {
	return func() tea.Msg {
		it, ok := compose.SelectImage(items)
		if !ok {
			return decodeFailedMsg{err: compose.ErrNoImage, source: source}
		}
		img, err := compose.DecodeItem(it)
		if err != nil {
			return decodeFailedMsg{err: err, source: source}
		}
		logging.Logger().Debug("decoded image", "source", source, "type", it.Type, "size", img.Bounds().Size())
		return imageDecodedMsg{img: img, source: source}
	}
}

func pasteCmd() tea.Msg {
	text, err := readClipboardText()
	if err != nil {
		return decodeFailedMsg{err: fmt.Errorf("read clipboard: %w", err), source: "clipboard"}
	}
	items, err := pasteItemsFromText(text)
	if err != nil {
		return decodeFailedMsg{err: err, source: "clipboard"}
	}
	return decodeItemsCmd(items, "clipboard")()
}

func openFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		p, ok := pathFromText(path)
		if !ok {
			return decodeFailedMsg{err: fmt.Errorf("open image: %s: %w", path, os.ErrNotExist), source: path}
		}
		it, err := readImageFile(p)
		if err != nil {
			return decodeFailedMsg{err: err, source: path}
		}
		return decodeItemsCmd([]compose.PasteItem{it}, it.Name)()
	}
}

// cellCenter maps a terminal cell to the device point at its centre.
func cellCenter(col, row int) geom.Point {
	return geom.Point{X: float64(col) + 0.5, Y: float64(row) + 0.5}
}

func clampWidth(w float64) float64 {
	return math.Max(brush.MinWidth, math.Min(brush.MaxWidth, w))
}

func displayRect(cols, rows int) geom.Rect {
	return geom.Rect{Width: float64(cols), Height: float64(rows)}
}
