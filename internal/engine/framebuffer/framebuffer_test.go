package framebuffer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlipRows(t *testing.T) {
	// 2x2, bottom row first
	pixels := []byte{
		1, 0, 0, 255, 2, 0, 0, 255,
		3, 0, 0, 255, 4, 0, 0, 255,
	}
	img := FlipRows(pixels, 2, 2)

	assert.Equal(t, color.NRGBA{R: 3, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 4, A: 255}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 1, A: 255}, img.NRGBAAt(0, 1))
}

func TestFlipRowsShortBuffer(t *testing.T) {
	img := FlipRows([]byte{1, 2, 3}, 2, 2)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 0))
}
