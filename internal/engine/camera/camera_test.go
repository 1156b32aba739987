package camera

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDragAccumulatesUntilApply(t *testing.T) {
	c := New(DefaultConfig(), 0, 0)

	c.HandleDrag(10, 5)
	c.HandleDrag(15, -2)
	assert.True(t, c.Pending())
	assert.Equal(t, float32(0), c.Yaw, "drags are not applied before the frame")

	c.Apply()
	assert.False(t, c.Pending())
	assert.InDelta(t, 10, c.Yaw, 1e-5)
	assert.InDelta(t, 1.2, c.Pitch, 1e-5)

	c.Apply()
	assert.InDelta(t, 10, c.Yaw, 1e-5, "deltas are consumed once")
}

func TestPitchClamped(t *testing.T) {
	c := New(DefaultConfig(), 200, 0)
	assert.Equal(t, float32(MaxPitch), c.Pitch)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		c.HandleDrag(float32(rng.NormFloat64()*400), float32(rng.NormFloat64()*400))
		if i%3 == 0 {
			c.Apply()
		}
		assert.GreaterOrEqual(t, c.Pitch, float32(MinPitch))
		assert.LessOrEqual(t, c.Pitch, float32(MaxPitch))
	}
}

func TestYawUnbounded(t *testing.T) {
	c := New(DefaultConfig(), 0, 0)
	c.HandleDrag(2000, 0)
	c.Apply()
	assert.InDelta(t, 800, c.Yaw, 1e-3)
}

func TestPan(t *testing.T) {
	c := New(DefaultConfig(), 0, 0)
	c.HandlePan(30, -10)
	c.Apply()
	assert.InDelta(t, 3, c.PanX, 1e-5)
	assert.InDelta(t, -1, c.PanY, 1e-5)
}

func TestZoomClamped(t *testing.T) {
	c := New(DefaultConfig(), 0, 0)

	c.HandleZoom(120)
	assert.InDelta(t, 1.15, c.Zoom, 1e-5)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		c.HandleZoom(float32(rng.NormFloat64() * 2400))
		assert.GreaterOrEqual(t, c.Zoom, float32(0.25))
		assert.LessOrEqual(t, c.Zoom, float32(5))
	}

	c.HandleZoom(1e6)
	assert.Equal(t, float32(5), c.Zoom)
	c.HandleZoom(-1e6)
	assert.Equal(t, float32(0.25), c.Zoom)
}

func TestCustomZoomBounds(t *testing.T) {
	c := New(Config{Sensitivity: 1, PanSpeed: 1, ZoomScale: 100, MinZoom: 2, MaxZoom: 0.5}, 0, 0)
	assert.Equal(t, float32(1), c.Zoom)
	c.HandleZoom(1000)
	assert.Equal(t, float32(2), c.Zoom, "swapped bounds are normalized")
}

func TestReset(t *testing.T) {
	c := New(DefaultConfig(), 35.264, -45)
	c.HandleDrag(40, 40)
	c.Apply()
	c.HandlePan(5, 5)
	c.HandleZoom(800)

	c.Reset(35.264, -45)
	assert.Equal(t, float32(-45), c.Yaw)
	assert.Equal(t, float32(35.264), c.Pitch)
	assert.Equal(t, float32(1), c.Zoom)
	assert.False(t, c.Pending())
}

func TestViewMatrixCentersModel(t *testing.T) {
	c := New(DefaultConfig(), 0, 0)
	// the orbit center (0,18,0) sits straight ahead of the eye
	p := mgl32.TransformCoordinate(mgl32.Vec3{0, CenterHeight, 0}, c.ViewMatrix())
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, -Distance, p[2], 1e-5)

	c.HandlePan(10, 10)
	c.Apply()
	p = mgl32.TransformCoordinate(mgl32.Vec3{0, CenterHeight, 0}, c.ViewMatrix())
	assert.InDelta(t, 1, p[0], 1e-5)
	assert.InDelta(t, -1, p[1], 1e-5, "screen-down drag moves the model down")
}

func TestProjectionModes(t *testing.T) {
	c := New(DefaultConfig(), 0, 0)

	persp := c.ProjectionMatrix(800, 600)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(60), 800.0/600.0, 0.1, 250), persp)

	c.Projection = Orthographic
	ortho := c.ProjectionMatrix(300, 150)
	assert.Equal(t, mgl32.Ortho(-20, 20, -10, 10, -100, 250), ortho)
	assert.Equal(t, "orthographic", c.Projection.String())

	assert.NotPanics(t, func() { c.ProjectionMatrix(0, 0) })
}
