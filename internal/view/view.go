// Package view is the collaborator-facing skin preview. It owns the model,
// the camera, the textures and the display flags, and turns them into one
// planned frame per call to Frame.
package view

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/engine/camera"
	"github.com/Faultbox/skinview/internal/engine/input/pointer"
	"github.com/Faultbox/skinview/internal/engine/scene"
	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/pkg/skin"
)

// Color is an RGB background color with components in [0, 1].
type Color = mgl32.Vec3

// Background presets.
var (
	LightBackground = Color{0.9, 0.9, 0.9}
	DarkBackground  = Color{0.15, 0.15, 0.15}
)

// Options configures a new View. Missing Visibility entries default to
// visible.
type Options struct {
	Slim         bool
	Exploded     bool
	Grid         bool
	Orthographic bool
	InitialPitch float32
	InitialYaw   float32
	Background   *Color
	Visibility   map[skin.Part]bool
	Camera       camera.Config
}

// View holds everything one preview renders.
type View struct {
	model      *skin.Model
	camera     *camera.Camera
	gestures   *pointer.Controller
	skin       *skin.Texture
	cape       *skin.Texture
	visibility skin.Visibility
	exploded   bool
	grid       bool
	background *Color
	pitch, yaw float32

	log *zap.Logger
}

// New creates a view showing tex. The skin is validated and legacy 64x32
// layouts are upgraded.
func New(tex *skin.Texture, opts Options) (*View, error) {
	camCfg := opts.Camera
	if camCfg == (camera.Config{}) {
		camCfg = camera.DefaultConfig()
	}

	v := &View{
		model:      skin.NewModel(opts.Slim),
		camera:     camera.New(camCfg, opts.InitialPitch, opts.InitialYaw),
		visibility: skin.AllVisible(),
		exploded:   opts.Exploded,
		grid:       opts.Grid,
		pitch:      opts.InitialPitch,
		yaw:        opts.InitialYaw,
		log:        logger.Named("view"),
	}
	v.gestures = pointer.NewController(v.camera)
	v.SetBackground(opts.Background)
	v.SetOrthographic(opts.Orthographic)
	for p, on := range opts.Visibility {
		if !p.Toggleable() {
			return nil, fmt.Errorf("visibility for %s: %w", p, skin.ErrUnknownPart)
		}
		v.visibility = v.visibility.With(p, on)
	}
	if err := v.SetSkin(tex); err != nil {
		return nil, err
	}
	return v, nil
}

// SetSkin replaces the skin texture. Geometry is untouched.
func (v *View) SetSkin(tex *skin.Texture) error {
	if err := skin.ValidateSkin(tex); err != nil {
		return err
	}
	if tex.IsLegacy() {
		v.log.Debug("upgrading legacy skin", zap.Uint64("texture", tex.ID()))
	}
	v.skin = skin.UpgradeLegacy(tex)
	return nil
}

// Skin returns the current skin texture.
func (v *View) Skin() *skin.Texture {
	return v.skin
}

// SetCape replaces the cape texture. nil removes the cape.
func (v *View) SetCape(tex *skin.Texture) error {
	if err := skin.ValidateCape(tex); err != nil {
		return err
	}
	v.cape = tex
	return nil
}

// Cape returns the current cape texture, or nil.
func (v *View) Cape() *skin.Texture {
	return v.cape
}

// SetSlim switches between the classic and slim arm geometry.
func (v *View) SetSlim(slim bool) {
	if v.model.SetSlim(slim) {
		v.log.Debug("arm geometry changed", zap.Bool("slim", slim),
			zap.Uint64("generation", v.model.Generation()))
	}
}

// Slim reports whether slim arms are used.
func (v *View) Slim() bool {
	return v.model.Slim()
}

// SetVisible shows or hides an overlay layer or the cape. Base parts are
// always visible and are ignored.
func (v *View) SetVisible(p skin.Part, visible bool) {
	v.visibility = v.visibility.With(p, visible)
}

// Visible reports whether a part is drawn.
func (v *View) Visible(p skin.Part) bool {
	return v.visibility.Visible(p)
}

// Toggle flips the visibility of a layer and returns the new state.
func (v *View) Toggle(p skin.Part) bool {
	v.SetVisible(p, !v.Visible(p))
	return v.Visible(p)
}

// SetExploded selects the exploded part offsets.
func (v *View) SetExploded(on bool) { v.exploded = on }

// Exploded reports whether parts are drawn at their exploded offsets.
func (v *View) Exploded() bool { return v.exploded }

// SetGrid turns the pixel grid overlay on or off.
func (v *View) SetGrid(on bool) { v.grid = on }

// Grid reports whether the pixel grid is drawn.
func (v *View) Grid() bool { return v.grid }

// SetBackground sets the clear color. nil restores the transparent default.
func (v *View) SetBackground(c *Color) {
	if c == nil {
		v.background = nil
		return
	}
	bg := *c
	v.background = &bg
}

// Background returns the clear color, or nil for the default.
func (v *View) Background() *Color {
	return v.background
}

// SetOrthographic switches the projection.
func (v *View) SetOrthographic(on bool) {
	if on {
		v.camera.Projection = camera.Orthographic
	} else {
		v.camera.Projection = camera.Perspective
	}
}

// Orthographic reports whether the orthographic projection is active.
func (v *View) Orthographic() bool {
	return v.camera.Projection == camera.Orthographic
}

// Camera exposes the camera state.
func (v *View) Camera() *camera.Camera {
	return v.camera
}

// Model exposes the avatar geometry.
func (v *View) Model() *skin.Model {
	return v.model
}

// ResetCamera restores the initial orientation, pan and zoom.
func (v *View) ResetCamera() {
	v.camera.Reset(v.pitch, v.yaw)
}

// SetInputEnabled turns pointer handling on or off.
func (v *View) SetInputEnabled(on bool) {
	v.gestures.SetEnabled(on)
}

// HandlePointer feeds a pointer event in view-local pixels.
func (v *View) HandlePointer(e pointer.Event) {
	v.gestures.Handle(e)
}

// Frame consumes the pending camera deltas and plans a frame for a surface
// of width x height pixels.
func (v *View) Frame(width, height int) *scene.Frame {
	v.camera.Apply()
	return scene.Plan(scene.Input{
		Width:      width,
		Height:     height,
		Model:      v.model,
		Skin:       v.skin,
		Cape:       v.cape,
		Visibility: v.visibility,
		Exploded:   v.exploded,
		Grid:       v.grid,
		Background: v.background,
		View:       v.camera.ViewMatrix(),
		Projection: v.camera.ProjectionMatrix(width, height),
	})
}
