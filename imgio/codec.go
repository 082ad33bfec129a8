package imgio

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// UnsupportedImageError reports a carrier format the codec cannot use.
// Lossy and palette formats are rejected outright: re-encoding them
// does not preserve low-order subpixel bits.
type UnsupportedImageError struct {
	Format string
}

func (e *UnsupportedImageError) Error() string {
	if e.Format == "" {
		return "unsupported image format"
	}
	return fmt.Sprintf("unsupported image format %q (lossless RGB required)", e.Format)
}

// DetectFormat identifies the image format from its magic bytes.
// Returns "" when the data matches no known format.
func DetectFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case bytes.HasPrefix(data, []byte("BM")):
		return "bmp"
	case bytes.HasPrefix(data, []byte("\xff\xd8\xff")):
		return "jpeg"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "gif"
	}
	return ""
}

// Decode parses PNG or BMP image bytes into a pixel array. The format
// is detected from magic bytes, not from any filename.
func Decode(data []byte) (*PixelArray, error) {
	switch format := DetectFormat(data); format {
	case "png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode PNG: %w", err)
		}
		return FromImage(img), nil
	case "bmp":
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode BMP: %w", err)
		}
		return FromImage(img), nil
	default:
		return nil, &UnsupportedImageError{Format: format}
	}
}

// Encode serializes the array as "png" or "bmp".
func (p *PixelArray) Encode(format string) ([]byte, error) {
	img, err := p.ToImage()
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	switch format {
	case "png":
		err = png.Encode(buf, img)
	case "bmp":
		err = bmp.Encode(buf, img)
	default:
		return nil, &UnsupportedImageError{Format: format}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Load reads a carrier image from disk.
func Load(path string) (*PixelArray, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return Decode(data)
}

// Save writes the array to disk, choosing the format from the output
// extension (.png or .bmp).
func Save(p *PixelArray, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	data, err := p.Encode(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}
