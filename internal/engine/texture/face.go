package texture

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/Faultbox/skinview/pkg/skin"
)

// Face thumbnail geometry.
const (
	FaceSize       = 72 // canvas and hat layer size
	FaceInnerSize  = 64 // head layer size
	FaceInnerInset = 4  // head layer offset on the canvas
)

var (
	headFront = image.Rect(8, 8, 16, 16)
	hatFront  = image.Rect(40, 8, 48, 16)
)

// Face renders the avatar icon: the head front scaled up with nearest
// neighbour and inset on a transparent canvas, with the hat front scaled
// to the full canvas and composited on top.
func Face(t *skin.Texture) *image.NRGBA {
	src := t.Image()
	canvas := image.NewNRGBA(image.Rect(0, 0, FaceSize, FaceSize))

	head := resize.Resize(FaceInnerSize, FaceInnerSize, src.SubImage(headFront), resize.NearestNeighbor)
	at := image.Rect(FaceInnerInset, FaceInnerInset, FaceInnerInset+FaceInnerSize, FaceInnerInset+FaceInnerSize)
	draw.Draw(canvas, at, head, head.Bounds().Min, draw.Src)

	if t.Height() >= skin.AtlasSize/2 {
		hat := resize.Resize(FaceSize, FaceSize, src.SubImage(hatFront), resize.NearestNeighbor)
		draw.Draw(canvas, canvas.Bounds(), hat, hat.Bounds().Min, draw.Over)
	}
	return canvas
}
