// Package scene plans a frame of the avatar view as an ordered draw list.
// Backends (OpenGL, software) execute the list; the planner never touches
// a graphics API.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skinview/pkg/skin"
)

// Pass is the stage a draw belongs to. Draws are emitted in pass order.
type Pass int

const (
	PassCape Pass = iota
	PassBase
	PassOverlay
	PassGrid
)

var passNames = [...]string{"cape", "base", "overlay", "grid"}

func (p Pass) String() string {
	if p < 0 || int(p) >= len(passNames) {
		return "unknown"
	}
	return passNames[p]
}

// Slot names the texture a draw samples.
type Slot int

const (
	SlotNone Slot = iota
	SlotSkin
	SlotCape
)

// DefaultClear is used when no background is configured.
var DefaultClear = mgl32.Vec4{1, 1, 1, 0}

// GridColor is the solid color of grid lines.
var GridColor = mgl32.Vec4{0, 0, 0, 1}

// Draw is one box drawn with one state. Textured draws use the box's
// triangulated mesh; grid draws use its grid lines.
type Draw struct {
	Pass      Pass
	Part      skin.Part
	Texture   Slot
	Model     mgl32.Mat4
	VScale    float32 // multiplies texture V
	Blend     bool    // src-alpha, one-minus-src-alpha
	AlphaTest bool    // discard texels with zero alpha
	CullBack  bool
	Lines     bool
	Color     mgl32.Vec4 // line color
}

// Input is everything a frame depends on.
type Input struct {
	Width, Height int
	Model         *skin.Model
	Skin          *skin.Texture
	Cape          *skin.Texture
	Visibility    skin.Visibility
	Exploded      bool
	Grid          bool
	Background    *mgl32.Vec3
	View          mgl32.Mat4
	Projection    mgl32.Mat4
}

// Frame is a planned frame.
type Frame struct {
	Width, Height int
	Clear         mgl32.Vec4
	View          mgl32.Mat4
	Projection    mgl32.Mat4
	Model         *skin.Model
	Skin          *skin.Texture
	Cape          *skin.Texture
	Draws         []Draw
}

// Plan builds the draw list: cape, base parts, visible overlays, then the
// grid when enabled.
func Plan(in Input) *Frame {
	f := &Frame{
		Width:      in.Width,
		Height:     in.Height,
		Clear:      DefaultClear,
		View:       in.View,
		Projection: in.Projection,
		Model:      in.Model,
		Skin:       in.Skin,
		Cape:       in.Cape,
		Draws:      make([]Draw, 0, 26),
	}
	if in.Background != nil {
		f.Clear = in.Background.Vec4(0)
	}
	if in.Model == nil {
		return f
	}

	box := func(p skin.Part) mgl32.Mat4 {
		return in.Model.Box(p).Matrix(in.Exploded)
	}

	if in.Cape != nil && in.Visibility.Visible(skin.Cape) {
		f.Draws = append(f.Draws, Draw{
			Pass:     PassCape,
			Part:     skin.Cape,
			Texture:  SlotCape,
			Model:    box(skin.Cape),
			VScale:   skin.CapeVScale,
			CullBack: true,
		})
	}

	for _, p := range skin.BaseParts() {
		f.Draws = append(f.Draws, Draw{
			Pass:    PassBase,
			Part:    p,
			Texture: SlotSkin,
			Model:   box(p),
			VScale:  1,
		})
	}

	for _, p := range skin.Overlays() {
		if !in.Visibility.Visible(p) {
			continue
		}
		f.Draws = append(f.Draws, Draw{
			Pass:      PassOverlay,
			Part:      p,
			Texture:   SlotSkin,
			Model:     box(p),
			VScale:    1,
			Blend:     true,
			AlphaTest: true,
		})
	}

	if in.Grid {
		inflate := mgl32.Scale3D(skin.GridInflate, skin.GridInflate, skin.GridInflate)
		grid := func(p skin.Part) {
			f.Draws = append(f.Draws, Draw{
				Pass:  PassGrid,
				Part:  p,
				Model: box(p).Mul4(inflate),
				Lines: true,
				Color: GridColor,
			})
		}
		for _, p := range skin.Overlays() {
			grid(p)
		}
		for _, p := range skin.BaseParts() {
			if !in.Visibility.Visible(p.Overlay()) {
				grid(p)
			}
		}
	}
	return f
}

// Textured returns the textured draws.
func (f *Frame) Textured() []Draw {
	return f.filter(func(d Draw) bool { return !d.Lines })
}

// GridDraws returns the line draws.
func (f *Frame) GridDraws() []Draw {
	return f.filter(func(d Draw) bool { return d.Lines })
}

func (f *Frame) filter(keep func(Draw) bool) []Draw {
	var out []Draw
	for _, d := range f.Draws {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// Texture returns the texture bound to a slot.
func (f *Frame) Texture(s Slot) *skin.Texture {
	switch s {
	case SlotSkin:
		return f.Skin
	case SlotCape:
		return f.Cape
	}
	return nil
}
