package skin

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	"golang.org/x/image/draw"
)

// ErrUnsupportedLayout is returned for images whose dimensions do not match
// a skin or cape atlas.
var ErrUnsupportedLayout = errors.New("unsupported texture layout")

var textureIDs atomic.Uint64

// Texture is an immutable RGBA atlas with a process-unique identity.
// Backends re-upload a texture only when its ID changes.
type Texture struct {
	id  uint64
	img *image.NRGBA
}

// NewTexture copies img into a new texture. The copy starts at the
// origin regardless of the source bounds.
func NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Texture{id: textureIDs.Add(1), img: dst}
}

// ID identifies this texture instance.
func (t *Texture) ID() uint64 { return t.id }

// Width of the atlas in pixels.
func (t *Texture) Width() int { return t.img.Rect.Dx() }

// Height of the atlas in pixels.
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// Image returns the pixels. Callers must not modify them.
func (t *Texture) Image() *image.NRGBA { return t.img }

// Pix returns the raw NRGBA bytes, rows top to bottom.
func (t *Texture) Pix() []byte { return t.img.Pix }

// Sample returns the texel nearest to (u, v) with coordinates clamped to
// the edge. v grows downward, matching the atlas layout.
func (t *Texture) Sample(u, v float32) color.NRGBA {
	w, h := t.Width(), t.Height()
	x := clampIndex(int(floor32(u*float32(w))), w)
	y := clampIndex(int(floor32(v*float32(h))), h)
	return t.img.NRGBAAt(x, y)
}

func floor32(f float32) float32 {
	i := float32(int64(f))
	if i > f {
		i--
	}
	return i
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// IsLegacy reports whether the texture is a 64x32 skin that predates the
// separate left limbs and overlay layers.
func (t *Texture) IsLegacy() bool {
	return t.Width() == AtlasSize && t.Height() == AtlasSize/2
}

// ValidateSkin accepts 64x64 skins and legacy 64x32 skins.
func ValidateSkin(t *Texture) error {
	if t == nil {
		return fmt.Errorf("%w: missing skin", ErrUnsupportedLayout)
	}
	w, h := t.Width(), t.Height()
	if w == AtlasSize && (h == AtlasSize || h == AtlasSize/2) {
		return nil
	}
	return fmt.Errorf("%w: skin %dx%d", ErrUnsupportedLayout, w, h)
}

// ValidateCape accepts 64x32 capes.
func ValidateCape(t *Texture) error {
	if t == nil {
		return nil
	}
	w, h := t.Width(), t.Height()
	if w == AtlasSize && h == AtlasSize/2 {
		return nil
	}
	return fmt.Errorf("%w: cape %dx%d", ErrUnsupportedLayout, w, h)
}
