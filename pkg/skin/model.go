package skin

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// CapeVScale stretches cape texture coordinates vertically. Cape images
// are 64x32 while box UVs are laid out against a 64 pixel square.
const CapeVScale = 2

var generations atomic.Uint64

// Model is the tagged part table of the avatar. Arms and sleeves follow
// the slim flag; every other entry is fixed.
type Model struct {
	boxes      [numParts]Box
	slim       bool
	generation uint64
}

// NewModel assembles the canonical avatar.
func NewModel(slim bool) *Model {
	m := &Model{}
	for _, e := range fixedParts {
		m.boxes[e.part] = e.box
	}
	m.setArms(slim)
	return m
}

// Slim reports the arm variant.
func (m *Model) Slim() bool {
	return m.slim
}

// SetSlim swaps the arm and sleeve boxes. It reports whether anything
// changed.
func (m *Model) SetSlim(slim bool) bool {
	if slim == m.slim {
		return false
	}
	m.setArms(slim)
	return true
}

func (m *Model) setArms(slim bool) {
	arms := classicArms
	if slim {
		arms = slimArms
	}
	for _, e := range arms {
		m.boxes[e.part] = e.box
	}
	m.slim = slim
	m.generation = generations.Add(1)
}

// Box returns the current box of a part.
func (m *Model) Box(p Part) Box {
	if !p.Valid() {
		return Box{}
	}
	return m.boxes[p]
}

// Generation changes every time any box of the model is replaced. It is
// unique across models, so it can key geometry caches.
func (m *Model) Generation() uint64 {
	return m.generation
}

type partBox struct {
	part Part
	box  Box
}

// bx mirrors the canonical argument order: position, exploded offset,
// pixel size, pivot, rotation, atlas origin, inflate.
func bx(px, py, pz, ex, ey, ez, sx, sy, sz, vx, vy, vz, rx, ry, rz, u, v, inflate float32) Box {
	return Box{
		Position: mgl32.Vec3{px, py, pz},
		Exploded: mgl32.Vec3{ex, ey, ez},
		Size:     mgl32.Vec3{sx, sy, sz},
		Pivot:    mgl32.Vec3{vx, vy, vz},
		Rotation: mgl32.Vec3{rx, ry, rz},
		U:        u,
		V:        v,
		Inflate:  inflate,
	}
}

var fixedParts = []partBox{
	{Head, bx(0, 28, 0, 0, 33, 0, 8, 8, 8, 0, 24, 0, 0, 0, 0, 0, 0, 0)},
	{Torso, bx(0, 18, 0, 0, 18, 0, 8, 12, 4, 0, 24, 0, 0, 0, 0, 0.25, 0.25, 0)},
	{RightLeg, bx(-2, 6, 0, -4.5, 1, 0, 4, 12, 4, -1.9, 12, 0, 0, 0, 0, 0, 0.25, 0)},
	{LeftLeg, bx(2, 6, 0, 4.5, 1, 0, 4, 12, 4, 1.9, 12, 0, 0, 0, 0, 0.25, 0.75, 0)},

	{Hat, bx(0, 28, 0, 0, 33, 0, 8, 8, 8, 0, 24, 0, 0, 0, 0, 0.5, 0, 1)},
	{Jacket, bx(0, 18, 0, 0, 18, 0, 8, 12, 4, 0, 24, 0, 0, 0, 0, 0.25, 0.5, 0.5)},
	{RightPants, bx(-2, 6, 0, -4.5, 1, 0, 4, 12, 4, -1.9, 12, 0, 0, 0, 0, 0, 0.5, 0.5)},
	{LeftPants, bx(2, 6, 0, 4.5, 1, 0, 4, 12, 4, 1.9, 12, 0, 0, 0, 0, 0, 0.75, 0.5)},

	{Cape, bx(0, 16, -3.5, 0, 16, 1.5, 10, 16, 1, 0, 24, -3, -15, 180, 0, 0, 0, 0)},
}

var classicArms = []partBox{
	{RightArm, bx(-6, 18, 0, -11, 18, 0, 4, 12, 4, -5, 22, 0, 0, 0, 0, 0.625, 0.25, 0)},
	{LeftArm, bx(6, 18, 0, 11, 18, 0, 4, 12, 4, 5, 22, 0, 0, 0, 0, 0.5, 0.75, 0)},
	{RightSleeve, bx(-6, 18, 0, -11, 18, 0, 4, 12, 4, -5, 22, 0, 0, 0, 0, 0.625, 0.5, 0.5)},
	{LeftSleeve, bx(6, 18, 0, 11, 18, 0, 4, 12, 4, 5, 22, 0, 0, 0, 0, 0.75, 0.75, 0.5)},
}

var slimArms = []partBox{
	{RightArm, bx(-5.5, 18, 0, -10.5, 18, 0, 3, 12, 4, -5, 21.5, 0, 0, 0, 0, 0.625, 0.25, 0)},
	{LeftArm, bx(5.5, 18, 0, 10.5, 18, 0, 3, 12, 4, 5, 21.5, 0, 0, 0, 0, 0.5, 0.75, 0)},
	{RightSleeve, bx(-5.5, 18, 0, -10.5, 18, 0, 3, 12, 4, -5, 21.5, 0, 0, 0, 0, 0.625, 0.5, 0.5)},
	{LeftSleeve, bx(5.5, 18, 0, 10.5, 18, 0, 3, 12, 4, 5, 21.5, 0, 0, 0, 0, 0.75, 0.75, 0.5)},
}
