package debug

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"webp", FormatWebP, false},
		{".webp", FormatWebP, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMIME(t *testing.T) {
	assert.Equal(t, "image/png", FormatPNG.MIME())
	assert.Equal(t, "image/webp", FormatWebP.MIME())
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testImage(), FormatPNG))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, a := img.At(1, 2).RGBA()
	assert.Equal(t, []uint32{10, 20, 30, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testImage(), FormatWebP))
	assert.Equal(t, "RIFF", string(buf.Bytes()[:4]))
	assert.Equal(t, "WEBP", string(buf.Bytes()[8:12]))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")
	require.NoError(t, WriteFile(path, testImage()))

	_, err := os.Stat(path)
	assert.NoError(t, err)

	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "out.bmp"), testImage()), ErrUnknownFormat)
}

func TestScreenshotCapture(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "skin", FormatWebP)
	sc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	want := filepath.Join(dir, "skin_2024-05-06_07-08-09.webp")
	assert.Equal(t, want, sc.GenerateFilename())

	got, err := sc.Capture(testImage())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.FileExists(t, got)
}
