package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrNoImage = errors.New("compose: no image")

// PasteItem is one entry of a paste or file-selection payload.
type PasteItem struct {
	// Type is a MIME type such as "image/png" or "text/plain".
	Type string
	// Name is the source file name, if any.
	Name string
	Data []byte
}

// IsImage reports whether the item is typed as an image.
func (it PasteItem) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(it.Type), "image/")
}

// SelectImage returns the first image item.
func SelectImage(items []PasteItem) (PasteItem, bool) {
	for _, it := range items {
		if it.IsImage() && len(it.Data) > 0 {
			return it, true
		}
	}
	return PasteItem{}, false
}

// Decode reads an image in any registered format: PNG, JPEG, GIF, BMP, TIFF
// or WebP.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("compose: decode: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, format, fmt.Errorf("%w: empty %s image", ErrNoImage, format)
	}
	return img, format, nil
}

// DecodeItem decodes an image paste item.
func DecodeItem(it PasteItem) (image.Image, error) {
	if !it.IsImage() {
		return nil, fmt.Errorf("%w: item type %q", ErrNoImage, it.Type)
	}
	img, _, err := Decode(bytes.NewReader(it.Data))
	if err != nil {
		if it.Name != "" {
			return nil, fmt.Errorf("%s: %w", it.Name, err)
		}
		return nil, err
	}
	return img, nil
}
