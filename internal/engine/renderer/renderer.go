// Package renderer executes scene frames with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/engine/scene"
	"github.com/Faultbox/skinview/internal/engine/shader"
	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/pkg/skin"
)

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	LineWidth float32
}

// Renderer draws planned frames. Box buffers are uploaded once per model
// generation and textures once per texture identity; a frame only sets
// uniforms and issues draws.
type Renderer struct {
	config Config

	boxProgram  *shader.Program
	lineProgram *shader.Program

	generation uint64
	boxes      map[skin.Part]*boxBuffers

	textures [3]textureSlot
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		boxes:  make(map[skin.Part]*boxBuffers),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.boxProgram, err = shader.NewProgram(shader.BoxVertex, shader.BoxFragment,
		shader.UniformMVP, shader.UniformTexture, shader.UniformVScale, shader.UniformAlphaTest)
	if err != nil {
		return nil, fmt.Errorf("box program: %w", err)
	}
	r.lineProgram, err = shader.NewProgram(shader.LineVertex, shader.LineFragment,
		shader.UniformMVP, shader.UniformColor)
	if err != nil {
		r.boxProgram.Delete()
		return nil, fmt.Errorf("line program: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.FrontFace(gl.CW)
	gl.CullFace(gl.BACK)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.releaseBoxes()
	for i := range r.textures {
		r.textures[i].release()
	}
	r.boxProgram.Delete()
	r.lineProgram.Delete()
}

// Resize records the surface size used by the next frame.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current surface size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Draw executes a frame into the bound framebuffer.
func (r *Renderer) Draw(f *scene.Frame) {
	gl.Viewport(0, 0, int32(f.Width), int32(f.Height))
	gl.ClearColor(f.Clear[0], f.Clear[1], f.Clear[2], f.Clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if f.Model == nil {
		return
	}
	r.syncBoxes(f.Model)
	r.textures[scene.SlotSkin].sync(f.Skin)
	r.textures[scene.SlotCape].sync(f.Cape)

	viewProj := f.Projection.Mul4(f.View)
	for _, d := range f.Draws {
		b := r.boxes[d.Part]
		if b == nil {
			continue
		}
		mvp := viewProj.Mul4(d.Model)

		if d.Lines {
			r.lineProgram.Use()
			gl.UniformMatrix4fv(r.lineProgram.Loc(shader.UniformMVP), 1, false, &mvp[0])
			gl.Uniform4f(r.lineProgram.Loc(shader.UniformColor), d.Color[0], d.Color[1], d.Color[2], d.Color[3])
			if r.config.LineWidth > 0 {
				gl.LineWidth(r.config.LineWidth)
			}
			setCap(gl.BLEND, false)
			setCap(gl.CULL_FACE, false)
			b.drawLines()
			continue
		}

		tex := r.textures[d.Texture]
		if tex.id == 0 {
			continue
		}
		r.boxProgram.Use()
		gl.UniformMatrix4fv(r.boxProgram.Loc(shader.UniformMVP), 1, false, &mvp[0])
		gl.Uniform1f(r.boxProgram.Loc(shader.UniformVScale), d.VScale)
		gl.Uniform1i(r.boxProgram.Loc(shader.UniformAlphaTest), boolInt(d.AlphaTest))
		gl.Uniform1i(r.boxProgram.Loc(shader.UniformTexture), 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.id)

		setCap(gl.BLEND, d.Blend)
		if d.Blend {
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		}
		setCap(gl.CULL_FACE, d.CullBack)
		b.drawTriangles()
	}

	setCap(gl.BLEND, false)
	setCap(gl.CULL_FACE, false)
	gl.BindVertexArray(0)
}

// syncBoxes uploads box buffers when the model generation changed.
func (r *Renderer) syncBoxes(m *skin.Model) {
	if len(r.boxes) > 0 && m.Generation() == r.generation {
		return
	}
	r.releaseBoxes()
	parts := append(skin.BaseParts(), skin.Layers()...)
	for _, p := range parts {
		r.boxes[p] = uploadBox(m.Box(p))
	}
	r.generation = m.Generation()
	logger.Debug("box buffers uploaded",
		zap.Uint64("generation", r.generation),
		zap.Bool("slim", m.Slim()),
	)
}

func (r *Renderer) releaseBoxes() {
	for p, b := range r.boxes {
		b.release()
		delete(r.boxes, p)
	}
}

func setCap(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
