package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Faultbox/skinview/pkg/skin"
)

var partColors = map[skin.Part]color.NRGBA{
	skin.Head:     {R: 0xd8, G: 0xa0, B: 0x7a, A: 0xff},
	skin.Torso:    {R: 0x3a, G: 0x7c, B: 0xc4, A: 0xff},
	skin.RightArm: {R: 0xc8, G: 0x90, B: 0x6a, A: 0xff},
	skin.LeftArm:  {R: 0xb8, G: 0x80, B: 0x5a, A: 0xff},
	skin.RightLeg: {R: 0x2e, G: 0x3a, B: 0x8c, A: 0xff},
	skin.LeftLeg:  {R: 0x26, G: 0x30, B: 0x78, A: 0xff},
}

// faceShade darkens each side so orientation is readable on a flat
// texture.
var faceShade = [6]uint8{255, 170, 230, 140, 200, 200}

var brim = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}

// Template builds a placeholder skin for the given arm variant: every
// base face is a flat shaded color and overlay areas are transparent
// except for a band along the bottom of the hat.
func Template(slim bool) *skin.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, skin.AtlasSize, skin.AtlasSize))
	m := skin.NewModel(slim)

	for _, p := range skin.BaseParts() {
		base := partColors[p]
		for _, q := range m.Box(p).Quads() {
			c := shade(base, faceShade[q.Face])
			draw.Draw(img, QuadRect(q), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	hat := m.Box(skin.Hat).Quads()
	for _, f := range []skin.Face{skin.FaceFront, skin.FaceBack, skin.FaceRight, skin.FaceLeft} {
		r := QuadRect(hat[f])
		r.Min.Y = r.Max.Y - 1
		draw.Draw(img, r, image.NewUniform(brim), image.Point{}, draw.Src)
	}
	return skin.NewTexture(img)
}

// QuadRect returns the atlas pixel rectangle covered by a quad.
func QuadRect(q skin.Quad) image.Rectangle {
	minU, minV := q.UV[0][0], q.UV[0][1]
	maxU, maxV := minU, minV
	for _, uv := range q.UV[1:] {
		minU, maxU = min(minU, uv[0]), max(maxU, uv[0])
		minV, maxV = min(minV, uv[1]), max(maxV, uv[1])
	}
	px := func(f float32) int { return int(f*skin.AtlasSize + 0.5) }
	return image.Rect(px(minU), px(minV), px(maxU), px(maxV))
}

func shade(c color.NRGBA, s uint8) color.NRGBA {
	mul := func(v uint8) uint8 { return uint8(uint16(v) * uint16(s) / 255) }
	return color.NRGBA{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}
