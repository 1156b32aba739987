// Package software executes scene frames on the CPU with fauxgl. It is
// used for headless renders and for checking frames without a GPU.
package software

import (
	"image"
	"image/color"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/nfnt/resize"

	"github.com/Faultbox/skinview/internal/engine/scene"
	"github.com/Faultbox/skinview/pkg/skin"
)

// Renderer rasterizes frames. Meshes and grid lines are cached per model
// generation.
type Renderer struct {
	supersample int

	generation uint64
	meshes     map[skin.Part][][3]skin.Vertex
	grids      map[skin.Part][]skin.Line
}

// New creates a renderer that draws at supersample times the frame size
// and scales the result down.
func New(supersample int) *Renderer {
	if supersample < 1 {
		supersample = 1
	}
	return &Renderer{supersample: supersample}
}

// Render draws the frame and returns the image, rows top to bottom.
func (r *Renderer) Render(f *scene.Frame) *image.NRGBA {
	w, h := f.Width*r.supersample, f.Height*r.supersample
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	r.sync(f.Model)

	dc := fauxgl.NewContext(w, h)
	dc.ClearColorBufferWith(fauxgl.Color{
		R: float64(f.Clear[0]), G: float64(f.Clear[1]), B: float64(f.Clear[2]), A: float64(f.Clear[3]),
	})
	dc.ClearDepthBuffer()
	dc.ReadDepth = true
	dc.WriteDepth = true
	dc.Cull = fauxgl.CullNone
	dc.LineWidth = float64(r.supersample)

	viewProj := f.Projection.Mul4(f.View)
	for _, d := range f.Draws {
		sh := &boxShader{
			mvp:       viewProj.Mul4(d.Model),
			tex:       f.Texture(d.Texture),
			vScale:    d.VScale,
			alphaTest: d.AlphaTest,
			lines:     d.Lines,
			color:     toColor(d.Color),
		}
		dc.Shader = sh
		dc.AlphaBlend = d.Blend

		if d.Lines {
			for _, l := range r.grids[d.Part] {
				dc.DrawLine(fauxgl.NewLine(vertex(l.A, mgl32.Vec2{}), vertex(l.B, mgl32.Vec2{})))
			}
			continue
		}
		if sh.tex == nil {
			continue
		}
		for _, tri := range r.meshes[d.Part] {
			if d.CullBack && sh.backFacing(tri) {
				continue
			}
			dc.DrawTriangle(fauxgl.NewTriangle(
				vertex(tri[0].Position, tri[0].UV),
				vertex(tri[1].Position, tri[1].UV),
				vertex(tri[2].Position, tri[2].UV),
			))
		}
	}

	out := toNRGBA(dc.Image())
	if r.supersample > 1 {
		out = toNRGBA(resize.Resize(uint(f.Width), uint(f.Height), out, resize.Bilinear))
	}
	return out
}

// sync rebuilds the cached geometry when the model generation changes.
func (r *Renderer) sync(m *skin.Model) {
	if m == nil || (r.meshes != nil && m.Generation() == r.generation) {
		return
	}
	r.meshes = make(map[skin.Part][][3]skin.Vertex)
	r.grids = make(map[skin.Part][]skin.Line)
	parts := append(skin.BaseParts(), skin.Layers()...)
	for _, p := range parts {
		b := m.Box(p)
		r.meshes[p] = b.Mesh().Triangles()
		r.grids[p] = b.GridLines()
	}
	r.generation = m.Generation()
}

func vertex(p mgl32.Vec3, uv mgl32.Vec2) fauxgl.Vertex {
	return fauxgl.Vertex{
		Position: fauxgl.Vector{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])},
		Texture:  fauxgl.Vector{X: float64(uv[0]), Y: float64(uv[1])},
	}
}

func toColor(c mgl32.Vec4) fauxgl.Color {
	return fauxgl.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// boxShader transforms unit-cube vertices by the draw's MVP and samples
// the atlas with nearest filtering.
type boxShader struct {
	mvp       mgl32.Mat4
	tex       *skin.Texture
	vScale    float32
	alphaTest bool
	lines     bool
	color     fauxgl.Color
}

func (s *boxShader) clip(p fauxgl.Vector) mgl32.Vec4 {
	return s.mvp.Mul4x1(mgl32.Vec4{float32(p.X), float32(p.Y), float32(p.Z), 1})
}

func (s *boxShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	c := s.clip(v.Position)
	v.Output = fauxgl.VectorW{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2]), W: float64(c[3])}
	return v
}

func (s *boxShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	if s.lines {
		return s.color
	}
	texel := s.tex.Sample(float32(v.Texture.X), float32(v.Texture.Y)*s.vScale)
	if s.alphaTest && texel.A == 0 {
		return fauxgl.Discard
	}
	return straight(texel)
}

// backFacing reports whether a clockwise-from-outside triangle faces away
// from the viewer. Triangles crossing the eye plane are never culled.
func (s *boxShader) backFacing(tri [3]skin.Vertex) bool {
	var ndc [3]mgl32.Vec2
	for i, v := range tri {
		c := s.mvp.Mul4x1(v.Position.Vec4(1))
		if c[3] <= 0 {
			return false
		}
		ndc[i] = mgl32.Vec2{c[0] / c[3], c[1] / c[3]}
	}
	ab := ndc[1].Sub(ndc[0])
	ac := ndc[2].Sub(ndc[0])
	return ab[0]*ac[1]-ab[1]*ac[0] > 0
}

func straight(c color.NRGBA) fauxgl.Color {
	const d = 255
	return fauxgl.Color{R: float64(c.R) / d, G: float64(c.G) / d, B: float64(c.B) / d, A: float64(c.A) / d}
}
