// Package camera provides the orbit camera used to inspect the avatar.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projection selects the projection matrix.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

func (p Projection) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Fixed view parameters.
const (
	FieldOfView    = 60    // degrees, vertical
	PerspNear      = 0.1   // perspective near plane
	Far            = 250   // far plane for both projections
	OrthoNear      = -100  // orthographic near plane
	OrthoUnitScale = 15    // surface pixels per unit in orthographic mode
	Distance       = 50    // eye distance from the model origin
	CenterHeight   = 18    // model height the camera orbits around
	MinPitch       = -90.0 // degrees
	MaxPitch       = 90.0
)

// Config holds the input gains and zoom bounds.
type Config struct {
	Sensitivity float32 // degrees per pixel of drag
	PanSpeed    float32 // units per pixel of secondary drag
	ZoomScale   float32 // wheel delta per unit of zoom
	MinZoom     float32
	MaxZoom     float32
}

// DefaultConfig returns the stock gains.
func DefaultConfig() Config {
	return Config{
		Sensitivity: 0.4,
		PanSpeed:    0.1,
		ZoomScale:   800,
		MinZoom:     0.25,
		MaxZoom:     5,
	}
}

// Camera orbits the avatar. Drag and pan gestures are recorded as pending
// deltas and folded into the state once per frame by Apply; zoom is
// applied immediately.
type Camera struct {
	Yaw        float32 // degrees, unbounded
	Pitch      float32 // degrees, [-90, 90]
	PanX, PanY float32
	Zoom       float32
	Projection Projection

	cfg Config

	// Pending deltas since the last Apply
	dragX, dragY float32
	moveX, moveY float32
}

// New creates a camera at the given orientation with zoom 1.
func New(cfg Config, pitch, yaw float32) *Camera {
	if cfg.MinZoom > cfg.MaxZoom {
		cfg.MinZoom, cfg.MaxZoom = cfg.MaxZoom, cfg.MinZoom
	}
	if cfg.ZoomScale == 0 {
		cfg.ZoomScale = DefaultConfig().ZoomScale
	}
	c := &Camera{cfg: cfg}
	c.Reset(pitch, yaw)
	return c
}

// Config returns the camera gains.
func (c *Camera) Config() Config {
	return c.cfg
}

// Reset restores the orientation, clears pan and pending deltas and sets
// zoom back to 1 (clamped).
func (c *Camera) Reset(pitch, yaw float32) {
	c.Yaw = yaw
	c.Pitch = clamp(pitch, MinPitch, MaxPitch)
	c.PanX, c.PanY = 0, 0
	c.Zoom = clamp(1, c.cfg.MinZoom, c.cfg.MaxZoom)
	c.dragX, c.dragY, c.moveX, c.moveY = 0, 0, 0, 0
}

// HandleDrag records a primary-button drag increment in pixels.
func (c *Camera) HandleDrag(dx, dy float32) {
	c.dragX += dx
	c.dragY += dy
}

// HandlePan records a secondary-button drag increment in pixels.
func (c *Camera) HandlePan(dx, dy float32) {
	c.moveX += dx
	c.moveY += dy
}

// HandleZoom applies a wheel delta and clamps to the zoom bounds.
func (c *Camera) HandleZoom(delta float32) {
	c.Zoom = clamp(c.Zoom+delta/c.cfg.ZoomScale, c.cfg.MinZoom, c.cfg.MaxZoom)
}

// Pending reports whether there are unconsumed drag or pan deltas.
func (c *Camera) Pending() bool {
	return c.dragX != 0 || c.dragY != 0 || c.moveX != 0 || c.moveY != 0
}

// Apply folds the pending deltas into the orientation and pan, then
// resets them. The renderer calls it exactly once per frame.
func (c *Camera) Apply() {
	c.Yaw += c.dragX * c.cfg.Sensitivity
	c.Pitch = clamp(c.Pitch+c.dragY*c.cfg.Sensitivity, MinPitch, MaxPitch)
	c.PanX += c.moveX * c.cfg.PanSpeed
	c.PanY += c.moveY * c.cfg.PanSpeed
	c.dragX, c.dragY, c.moveX, c.moveY = 0, 0, 0, 0
}

// ViewMatrix returns the view transform for the current state.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	m := mgl32.Translate3D(0, 0, -Distance)
	m = m.Mul4(mgl32.Translate3D(c.PanX, -c.PanY, 0))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.Pitch)))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.Yaw)))
	m = m.Mul4(mgl32.Scale3D(c.Zoom, c.Zoom, c.Zoom))
	return m.Mul4(mgl32.Translate3D(0, -CenterHeight, 0))
}

// ProjectionMatrix returns the projection for a surface of w x h pixels.
func (c *Camera) ProjectionMatrix(w, h int) mgl32.Mat4 {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	fw, fh := float32(w), float32(h)
	if c.Projection == Orthographic {
		return mgl32.Ortho(-fw/OrthoUnitScale, fw/OrthoUnitScale, -fh/OrthoUnitScale, fh/OrthoUnitScale, OrthoNear, Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), fw/fh, PerspNear, Far)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
