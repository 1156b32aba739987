// Package debug writes captured frames to disk.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// ErrUnknownFormat is returned for output formats other than png and webp.
var ErrUnknownFormat = errors.New("unknown image format")

// Format is an output image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat accepts "png" or "webp", case-insensitively. An empty
// string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// MIME returns the media type of the format.
func (f Format) MIME() string {
	if f == FormatWebP {
		return "image/webp"
	}
	return "image/png"
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG, "":
		return png.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// WriteFile encodes img to path, choosing the format from the extension.
func WriteFile(path string, img image.Image) error {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return file.Close()
}

// ScreenshotCapture saves frames under timestamped names.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    Format
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler writing to outputDir.
func NewScreenshotCapture(outputDir, prefix string, format Format) *ScreenshotCapture {
	if format == "" {
		format = FormatPNG
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// GenerateFilename returns the path the next capture would use.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s_%s.%s", sc.prefix, timestamp, sc.format)
	if sc.outputDir != "" {
		name = filepath.Join(sc.outputDir, name)
	}
	return name
}

// Capture writes img and returns the file name.
func (sc *ScreenshotCapture) Capture(img image.Image) (string, error) {
	name := sc.GenerateFilename()
	if err := WriteFile(name, img); err != nil {
		return "", err
	}
	return name, nil
}
