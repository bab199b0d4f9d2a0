package main

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"chalk/internal/compose"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, uniform(2, 2, color.RGBA{9, 9, 9, 255})); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPasteItemsFromText(t *testing.T) {
	data := pngBytes(t)
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(pngPath, data, 0o644); err != nil {
		t.Fatal(err)
	}
	tiffPath := filepath.Join(dir, "scan.TIFF")
	if err := os.WriteFile(tiffPath, []byte("not really a tiff"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		text     string
		wantType string
		wantName string
		wantData []byte
	}{
		{"data uri", "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), "image/png", "", data},
		{"plain data uri", "data:,hello%20there", "text/plain", "", []byte("hello there")},
		{"path", pngPath, "image/png", "shot.png", data},
		{"quoted path", `"` + pngPath + `"`, "image/png", "shot.png", data},
		{"file url", "file://" + pngPath, "image/png", "shot.png", data},
		{"extension fallback", tiffPath, "image/tiff", "scan.TIFF", []byte("not really a tiff")},
		{"text", "  just some notes ", "text/plain", "", []byte("just some notes")},
		{"missing file", filepath.Join(dir, "gone.png"), "text/plain", "", []byte(filepath.Join(dir, "gone.png"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := pasteItemsFromText(tt.text)
			if err != nil {
				t.Fatalf("pasteItemsFromText() error = %v", err)
			}
			if len(items) != 1 {
				t.Fatalf("got %d items, want 1", len(items))
			}
			it := items[0]
			if it.Type != tt.wantType || it.Name != tt.wantName || !bytes.Equal(it.Data, tt.wantData) {
				t.Errorf("item = {%s %s %d bytes}, want {%s %s %d bytes}", it.Type, it.Name, len(it.Data), tt.wantType, tt.wantName, len(tt.wantData))
			}
		})
	}
}

func TestPasteItemsFromTextErrors(t *testing.T) {
	if items, err := pasteItemsFromText("   "); err != nil || items != nil {
		t.Errorf("blank text = %v, %v; want nothing", items, err)
	}
	if _, err := pasteItemsFromText("data:image/png;base64"); err == nil {
		t.Error("data URI without payload should fail")
	}
	if _, err := pasteItemsFromText("data:image/png;base64,@@@"); err == nil {
		t.Error("data URI with bad base64 should fail")
	}
}

func TestDecodeItemsCmd(t *testing.T) {
	items := []compose.PasteItem{
		{Type: "text/plain", Data: []byte("hi")},
		{Type: "image/png", Data: pngBytes(t)},
	}
	msg := decodeItemsCmd(items, "clipboard")()
	decoded, ok := msg.(imageDecodedMsg)
	if !ok {
		t.Fatalf("cmd() = %#v, want imageDecodedMsg", msg)
	}
	if decoded.img.Bounds().Dx() != 2 {
		t.Errorf("decoded bounds = %v", decoded.img.Bounds())
	}

	msg = decodeItemsCmd(items[:1], "clipboard")()
	failed, ok := msg.(decodeFailedMsg)
	if !ok || failed.err != compose.ErrNoImage {
		t.Errorf("cmd() = %#v, want ErrNoImage", msg)
	}
}

func TestRenderCanvas(t *testing.T) {
	img := uniform(40, 40, color.RGBA{0, 0xa6, 0x3e, 0xff})
	lines := renderCanvas(img, 10, 5)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 10 {
			t.Errorf("line %d width = %d, want 10", i, w)
		}
		if !strings.Contains(line, halfBlock) {
			t.Errorf("line %d has no half blocks: %q", i, line)
		}
	}

	if got := renderCanvas(nil, 3, 2); len(got) != 2 || got[0] != "   " {
		t.Errorf("renderCanvas(nil) = %q", got)
	}
	if got := renderCanvas(img, 0, 2); got != nil {
		t.Errorf("renderCanvas with no columns = %q", got)
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(color.RGBA{0x00, 0xa6, 0x3e, 0xff}); got != "#00a63e" {
		t.Errorf("hexColor() = %q", got)
	}
}
