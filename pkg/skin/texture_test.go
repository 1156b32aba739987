package skin

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blank(w, h int) *Texture {
	return NewTexture(image.NewNRGBA(image.Rect(0, 0, w, h)))
}

func TestValidateSkin(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"modern", 64, 64, false},
		{"legacy", 64, 32, false},
		{"too wide", 65, 64, true},
		{"hd", 128, 128, true},
		{"square cape size", 32, 32, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSkin(blank(tt.w, tt.h))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedLayout)
				assert.Contains(t, err.Error(), "unsupported texture layout")
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.ErrorIs(t, ValidateSkin(nil), ErrUnsupportedLayout)
}

func TestValidateCape(t *testing.T) {
	assert.NoError(t, ValidateCape(nil))
	assert.NoError(t, ValidateCape(blank(64, 32)))
	assert.ErrorIs(t, ValidateCape(blank(64, 64)), ErrUnsupportedLayout)
}

func TestTextureIdentity(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	a := NewTexture(src)
	b := NewTexture(src)
	assert.NotEqual(t, a.ID(), b.ID())

	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	assert.Equal(t, color.NRGBA{}, a.Image().NRGBAAt(0, 0), "texture owns a copy")
}

func TestNewTextureRebasesBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 74, 42))
	src.SetNRGBA(10, 10, color.NRGBA{G: 255, A: 255})

	tex := NewTexture(src)
	assert.Equal(t, 64, tex.Width())
	assert.Equal(t, 32, tex.Height())
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, tex.Image().NRGBAAt(0, 0))
}

func TestSampleNearestClamped(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	src.SetNRGBA(8, 8, red)
	src.SetNRGBA(63, 63, blue)
	tex := NewTexture(src)

	assert.Equal(t, red, tex.Sample(8.5/64, 8.5/64))
	assert.Equal(t, blue, tex.Sample(1, 1), "u=v=1 clamps to the last texel")
	assert.Equal(t, blue, tex.Sample(3, 2))
	assert.Equal(t, tex.Sample(0, 0), tex.Sample(-1, -0.5))
}

func TestUpgradeLegacy(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	front := color.NRGBA{R: 200, A: 255}
	side := color.NRGBA{G: 200, A: 255}
	arm := color.NRGBA{B: 200, A: 255}
	src.SetNRGBA(4, 20, front) // right leg front, first column
	src.SetNRGBA(0, 20, side)  // right leg outer side
	src.SetNRGBA(44, 20, arm)  // right arm front
	legacy := NewTexture(src)
	require.True(t, legacy.IsLegacy())

	up := UpgradeLegacy(legacy)
	require.NoError(t, ValidateSkin(up))
	assert.Equal(t, 64, up.Height())
	assert.NotEqual(t, legacy.ID(), up.ID())

	img := up.Image()
	assert.Equal(t, front, img.NRGBAAt(4, 20), "top half is kept")
	assert.Equal(t, front, img.NRGBAAt(23, 52), "left leg front is mirrored")
	assert.Equal(t, side, img.NRGBAAt(27, 52), "outer side moves to the other side")
	assert.Equal(t, arm, img.NRGBAAt(39, 52), "left arm front is mirrored")
	assert.Equal(t, uint8(0), img.NRGBAAt(4, 36).A, "overlay area stays transparent")

	modern := blank(64, 64)
	assert.Same(t, modern, UpgradeLegacy(modern))
}
