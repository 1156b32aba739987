package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/Faultbox/skinview/pkg/skin"
)

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// tgaBytes encodes an uncompressed 32-bit top-down TGA with an optional
// image ID field.
func tgaBytes(img *image.NRGBA, id string) []byte {
	b := img.Bounds()
	out := []byte{byte(len(id)), 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		byte(b.Dx()), byte(b.Dx() >> 8), byte(b.Dy()), byte(b.Dy() >> 8), 32, 0x28}
	out = append(out, id...)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := img.NRGBAAt(x, y)
			out = append(out, c.B, c.G, c.R, c.A)
		}
	}
	return out
}

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	img.SetNRGBA(3, 5, swatch)
	return img
}

var swatch = color.NRGBA{R: 90, G: 60, B: 30, A: 255}

func filled() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.NewUniform(swatch), image.Point{}, draw.Src)
	return img
}

func encoded(t *testing.T, encode func(io.Writer) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf))
	return buf.Bytes()
}

func TestDecodeFormats(t *testing.T) {
	paletted := image.NewPaletted(image.Rect(0, 0, 64, 64), color.Palette{color.NRGBA{}, swatch})
	paletted.SetColorIndex(3, 5, 1)

	tests := []struct {
		name  string
		data  []byte
		hint  string
		delta float64
	}{
		{"png", pngBytes(t, sample()), "skin.png", 0},
		{"png without extension", pngBytes(t, sample()), "skin", 0},
		{"jpeg", encoded(t, func(w io.Writer) error {
			return jpeg.Encode(w, filled(), &jpeg.Options{Quality: 100})
		}), "skin.jpg", 4},
		{"gif", encoded(t, func(w io.Writer) error { return gif.Encode(w, paletted, nil) }), "skin.gif", 0},
		{"bmp", encoded(t, func(w io.Writer) error { return bmp.Encode(w, sample()) }), "skin.bmp", 0},
		{"webp", encoded(t, func(w io.Writer) error { return nativewebp.Encode(w, sample(), nil) }), "skin.webp", 0},
		{"tga by name", tgaBytes(sample(), ""), "skin.TGA", 0},
		{"tga sniff fallback", tgaBytes(sample(), "skinview"), "skin", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data, tt.hint)
			require.NoError(t, err)
			assert.Equal(t, 64, img.Bounds().Dx())
			assert.Equal(t, 64, img.Bounds().Dy())
			r, g, b, _ := img.At(3, 5).RGBA()
			assert.InDelta(t, float64(swatch.R), float64(r>>8), tt.delta)
			assert.InDelta(t, float64(swatch.G), float64(g>>8), tt.delta)
			assert.InDelta(t, float64(swatch.B), float64(b>>8), tt.delta)
		})
	}
}

func TestDecodeIgnoresMisleadingExtension(t *testing.T) {
	// the content decides, not the name
	img, err := Decode(pngBytes(t, sample()), "skin.bmp")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"), "notes.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	// a zip archive is recognized but is not an image
	_, err = Decode([]byte{'P', 'K', 0x03, 0x04, 0, 0, 0, 0, 0, 0, 0, 0}, "skin.zip")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadSkin(t *testing.T) {
	dir := t.TempDir()

	modern := filepath.Join(dir, "modern.png")
	require.NoError(t, os.WriteFile(modern, pngBytes(t, sample()), 0644))
	tex, err := LoadSkin(modern)
	require.NoError(t, err)
	assert.Equal(t, 64, tex.Height())

	legacy := filepath.Join(dir, "legacy.png")
	require.NoError(t, os.WriteFile(legacy, pngBytes(t, image.NewNRGBA(image.Rect(0, 0, 64, 32))), 0644))
	tex, err = LoadSkin(legacy)
	require.NoError(t, err)
	assert.Equal(t, 64, tex.Height(), "legacy skins are upgraded")

	odd := filepath.Join(dir, "odd.png")
	require.NoError(t, os.WriteFile(odd, pngBytes(t, image.NewNRGBA(image.Rect(0, 0, 32, 32))), 0644))
	_, err = LoadSkin(odd)
	assert.ErrorIs(t, err, skin.ErrUnsupportedLayout)

	_, err = LoadSkin(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestLoadCape(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "cape.png")
	require.NoError(t, os.WriteFile(good, pngBytes(t, image.NewNRGBA(image.Rect(0, 0, 64, 32))), 0644))
	_, err := LoadCape(good)
	require.NoError(t, err)

	bad := filepath.Join(dir, "big.png")
	require.NoError(t, os.WriteFile(bad, pngBytes(t, sample()), 0644))
	_, err = LoadCape(bad)
	assert.ErrorIs(t, err, skin.ErrUnsupportedLayout)
}

func TestFace(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	skinColor := color.NRGBA{R: 200, G: 150, B: 100, A: 255}
	hatColor := color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	for y := 8; y < 16; y++ {
		for x := 8; x < 16; x++ {
			img.SetNRGBA(x, y, skinColor)
		}
	}
	// one opaque hat pixel in the top-left corner of the hat front
	img.SetNRGBA(40, 8, hatColor)

	face := Face(skin.NewTexture(img))
	require.Equal(t, image.Rect(0, 0, 72, 72), face.Bounds())

	assert.Equal(t, uint8(0), face.NRGBAAt(71, 71).A, "outside the inset head")
	assert.Equal(t, skinColor, face.NRGBAAt(36, 36))
	assert.Equal(t, skinColor, face.NRGBAAt(67, 67))
	assert.Equal(t, hatColor, face.NRGBAAt(0, 0), "hat pixel covers 9x9")
	assert.Equal(t, hatColor, face.NRGBAAt(8, 8))
	assert.Equal(t, skinColor, face.NRGBAAt(9, 9))
}

func TestTemplate(t *testing.T) {
	for _, slim := range []bool{false, true} {
		tex := Template(slim)
		require.NoError(t, skin.ValidateSkin(tex))
		img := tex.Image()

		// head front is opaque, hat front interior transparent
		assert.Equal(t, uint8(255), img.NRGBAAt(12, 12).A)
		assert.Equal(t, uint8(0), img.NRGBAAt(44, 10).A)
		assert.Equal(t, brim, img.NRGBAAt(44, 15))
		// torso front carries the torso color at full shade
		assert.Equal(t, partColors[skin.Torso], img.NRGBAAt(24, 24))
	}
	// the classic right arm back reaches x=56, the slim one stops at 54
	assert.Equal(t, uint8(255), Template(false).Image().NRGBAAt(55, 24).A)
	assert.Equal(t, uint8(0), Template(true).Image().NRGBAAt(55, 24).A)
}

func TestQuadRect(t *testing.T) {
	head := skin.NewModel(false).Box(skin.Head).Quads()
	assert.Equal(t, image.Rect(8, 8, 16, 16), QuadRect(head[skin.FaceFront]))
	assert.Equal(t, image.Rect(16, 0, 24, 8), QuadRect(head[skin.FaceBottom]))
}
