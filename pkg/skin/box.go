// Package skin describes the voxel avatar: parametric boxes, the texture
// atlas unwrap that maps them onto a skin image, and the part table that
// assembles them into a player model.
package skin

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// AtlasSize is the width of the skin atlas in pixels. Box UV origins and
// pixel offsets are expressed as fractions of it.
const AtlasSize = 64

// ErrInvalidBox is returned when a box has a non-positive size or a
// negative inflate.
var ErrInvalidBox = errors.New("invalid box")

// Face identifies one side of a box. The order matches Box.Quads.
type Face int

const (
	FaceFront Face = iota
	FaceBack
	FaceTop
	FaceBottom
	FaceRight
	FaceLeft
)

var faceNames = [...]string{"front", "back", "top", "bottom", "right", "left"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// unitVertices are the corners of the unit cube. Quad indices refer to
// this order.
var unitVertices = [8]mgl32.Vec3{
	{-0.5, -0.5, 0.5},
	{-0.5, 0.5, 0.5},
	{0.5, 0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
	{-0.5, -0.5, -0.5},
}

// Vertices returns the eight unit-cube corners shared by every box.
func Vertices() [8]mgl32.Vec3 {
	return unitVertices
}

// Quad is one textured face of a box: four corner indices into Vertices
// and the atlas coordinate of each corner.
type Quad struct {
	Face    Face
	Indices [4]int
	UV      [4]mgl32.Vec2
}

// Normal returns the outward facing normal of the quad. Quads are wound
// clockwise when seen from outside.
func (q Quad) Normal() mgl32.Vec3 {
	a := unitVertices[q.Indices[0]]
	b := unitVertices[q.Indices[1]]
	c := unitVertices[q.Indices[2]]
	return c.Sub(a).Cross(b.Sub(a)).Normalize()
}

// Box is an axis-aligned cuboid mapped onto one region of the skin atlas.
// Size is in pixels; Position, Exploded and Pivot are in model units
// (one unit per pixel); Rotation is in degrees.
type Box struct {
	Size     mgl32.Vec3
	Position mgl32.Vec3
	Exploded mgl32.Vec3
	Pivot    mgl32.Vec3
	Rotation mgl32.Vec3
	U, V     float32
	Inflate  float32
}

// NewBox builds a validated box.
func NewBox(pos, exploded, size, pivot, rot mgl32.Vec3, u, v, inflate float32) (Box, error) {
	b := Box{
		Size:     size,
		Position: pos,
		Exploded: exploded,
		Pivot:    pivot,
		Rotation: rot,
		U:        u,
		V:        v,
		Inflate:  inflate,
	}
	if err := b.Validate(); err != nil {
		return Box{}, err
	}
	return b, nil
}

// Validate checks the box dimensions.
func (b Box) Validate() error {
	if b.Size[0] <= 0 || b.Size[1] <= 0 || b.Size[2] <= 0 {
		return fmt.Errorf("%w: size %vx%vx%v", ErrInvalidBox, b.Size[0], b.Size[1], b.Size[2])
	}
	if b.Inflate < 0 {
		return fmt.Errorf("%w: inflate %v", ErrInvalidBox, b.Inflate)
	}
	return nil
}

// Scale is the per-axis scale applied to the unit cube.
func (b Box) Scale() mgl32.Vec3 {
	return mgl32.Vec3{b.Size[0] + b.Inflate, b.Size[1] + b.Inflate, b.Size[2] + b.Inflate}
}

// Offset returns the translation used for the box in normal or exploded
// mode.
func (b Box) Offset(exploded bool) mgl32.Vec3 {
	if exploded {
		return b.Exploded
	}
	return b.Position
}

// Matrix returns the model transform of the box:
// T(pivot) Rz Ry Rx T(-pivot) T(offset) S(scale).
func (b Box) Matrix(exploded bool) mgl32.Mat4 {
	off := b.Offset(exploded)
	s := b.Scale()
	m := mgl32.Translate3D(b.Pivot[0], b.Pivot[1], b.Pivot[2])
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(b.Rotation[2])))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(b.Rotation[1])))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(b.Rotation[0])))
	m = m.Mul4(mgl32.Translate3D(-b.Pivot[0], -b.Pivot[1], -b.Pivot[2]))
	m = m.Mul4(mgl32.Translate3D(off[0], off[1], off[2]))
	return m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// Quads returns the six faces in the order front, back, top, bottom,
// right, left with their atlas coordinates. The result depends only on
// Size, U and V.
func (b Box) Quads() [6]Quad {
	x, y, z := b.Size[0], b.Size[1], b.Size[2]
	u, v := b.U, b.V
	at := func(du, dv float32) mgl32.Vec2 {
		return mgl32.Vec2{u + du/AtlasSize, v + dv/AtlasSize}
	}
	return [6]Quad{
		{FaceFront, [4]int{0, 1, 2, 3}, [4]mgl32.Vec2{
			at(z, y+z), at(z, z), at(x+z, z), at(x+z, y+z),
		}},
		{FaceBack, [4]int{4, 5, 6, 7}, [4]mgl32.Vec2{
			at(2*z+x, y+z), at(2*z+x, z), at(2*z+2*x, z), at(2*z+2*x, y+z),
		}},
		{FaceTop, [4]int{1, 6, 5, 2}, [4]mgl32.Vec2{
			at(z, z), at(z, 0), at(x+z, 0), at(x+z, z),
		}},
		{FaceBottom, [4]int{3, 4, 7, 0}, [4]mgl32.Vec2{
			at(2*x+z, z), at(2*x+z, 0), at(x+z, 0), at(x+z, z),
		}},
		{FaceRight, [4]int{7, 6, 1, 0}, [4]mgl32.Vec2{
			at(0, y+z), at(0, z), at(z, z), at(z, y+z),
		}},
		{FaceLeft, [4]int{3, 2, 5, 4}, [4]mgl32.Vec2{
			at(x+z, y+z), at(x+z, z), at(x+2*z, z), at(x+2*z, y+z),
		}},
	}
}
