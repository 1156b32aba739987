package skin

import (
	"image"

	"golang.org/x/image/draw"
)

// limbRegions are the face rectangles of a 4x12x4 limb relative to its
// atlas origin, in the order top, bottom, right, front, left, back.
var limbRegions = [6]image.Rectangle{
	image.Rect(4, 0, 8, 4),
	image.Rect(8, 0, 12, 4),
	image.Rect(0, 4, 4, 16),
	image.Rect(4, 4, 8, 16),
	image.Rect(8, 4, 12, 16),
	image.Rect(12, 4, 16, 16),
}

// mirrorTarget maps each source face to the face it lands on when the limb
// is mirrored: the side faces swap, the rest stay in place.
var mirrorTarget = [6]int{0, 1, 4, 3, 2, 5}

// UpgradeLegacy converts a 64x32 skin to the 64x64 layout. The left leg
// and left arm are the mirrored right limbs; overlay areas stay
// transparent. Other textures are returned unchanged.
func UpgradeLegacy(t *Texture) *Texture {
	if t == nil || !t.IsLegacy() {
		return t
	}
	src := t.Image()
	dst := image.NewNRGBA(image.Rect(0, 0, AtlasSize, AtlasSize))
	draw.Draw(dst, src.Bounds(), src, image.Point{}, draw.Src)

	mirrorLimb(dst, src, image.Pt(0, 16), image.Pt(16, 48))  // leg
	mirrorLimb(dst, src, image.Pt(40, 16), image.Pt(32, 48)) // arm
	return &Texture{id: textureIDs.Add(1), img: dst}
}

func mirrorLimb(dst, src *image.NRGBA, from, to image.Point) {
	for i, r := range limbRegions {
		s := r.Add(from)
		d := limbRegions[mirrorTarget[i]].Add(to)
		for y := 0; y < s.Dy(); y++ {
			for x := 0; x < s.Dx(); x++ {
				dst.SetNRGBA(d.Max.X-1-x, d.Min.Y+y, src.NRGBAAt(s.Min.X+x, s.Min.Y+y))
			}
		}
	}
}
