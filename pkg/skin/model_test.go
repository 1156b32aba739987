package skin

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSlimSwapTouchesOnlyArms(t *testing.T) {
	m := NewModel(false)
	before := m.boxes
	gen := m.Generation()

	assert.True(t, m.SetSlim(true))
	assert.True(t, m.Slim())
	assert.NotEqual(t, gen, m.Generation())

	arms := map[Part]bool{RightArm: true, LeftArm: true, RightSleeve: true, LeftSleeve: true}
	for p := Head; p < numParts; p++ {
		if arms[p] {
			assert.NotEqual(t, before[p], m.Box(p), "%v should change", p)
		} else {
			assert.Equal(t, before[p], m.Box(p), "%v should not change", p)
		}
	}

	assert.True(t, m.SetSlim(false))
	assert.Equal(t, before, m.boxes)
}

func TestSetSlimNoop(t *testing.T) {
	m := NewModel(true)
	gen := m.Generation()
	assert.False(t, m.SetSlim(true))
	assert.Equal(t, gen, m.Generation())
}

func TestGenerationsUnique(t *testing.T) {
	a, b := NewModel(false), NewModel(false)
	assert.NotEqual(t, a.Generation(), b.Generation())
}

func TestArmVariants(t *testing.T) {
	classic := NewModel(false)
	slim := NewModel(true)

	assert.Equal(t, mgl32.Vec3{4, 12, 4}, classic.Box(RightArm).Size)
	assert.Equal(t, mgl32.Vec3{3, 12, 4}, slim.Box(RightArm).Size)
	assert.Equal(t, mgl32.Vec3{-5, 22, 0}, classic.Box(RightArm).Pivot)
	assert.Equal(t, mgl32.Vec3{5, 21.5, 0}, slim.Box(LeftArm).Pivot)

	assert.Equal(t, float32(0.625), slim.Box(RightSleeve).U)
	assert.Equal(t, float32(0.5), slim.Box(RightSleeve).V)
	assert.Equal(t, float32(0.75), classic.Box(LeftSleeve).U)
	assert.Equal(t, float32(0.75), classic.Box(LeftSleeve).V)
	assert.Equal(t, float32(0.5), classic.Box(LeftSleeve).Inflate)
}

func TestFixedParts(t *testing.T) {
	m := NewModel(false)

	assert.Equal(t, float32(1), m.Box(Hat).Inflate)
	assert.Equal(t, m.Box(Head).Position, m.Box(Hat).Position)
	assert.Equal(t, mgl32.Vec3{-1.9, 12, 0}, m.Box(RightLeg).Pivot)
	assert.Equal(t, mgl32.Vec3{-15, 180, 0}, m.Box(Cape).Rotation)
	assert.Equal(t, mgl32.Vec3{10, 16, 1}, m.Box(Cape).Size)
	assert.Equal(t, Box{}, m.Box(Part(-1)))
}
