package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/pkg/skin"
)

// boxBuffers holds the retained geometry of one box: a textured mesh and
// its grid lines, both in unit-cube space.
type boxBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32

	lineVAO, lineVBO uint32
	lineCount        int32
}

func uploadBox(b skin.Box) *boxBuffers {
	mesh := b.Mesh()
	vertices := mesh.Interleave()
	stride := int32(skin.VertexStride * 4)

	bb := &boxBuffers{indexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &bb.vao)
	gl.BindVertexArray(bb.vao)

	gl.GenBuffers(1, &bb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, bb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &bb.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, bb.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	lines := b.GridLines()
	points := make([]float32, 0, len(lines)*6)
	for _, l := range lines {
		points = append(points, l.A[0], l.A[1], l.A[2], l.B[0], l.B[1], l.B[2])
	}
	bb.lineCount = int32(len(lines) * 2)

	gl.GenVertexArrays(1, &bb.lineVAO)
	gl.BindVertexArray(bb.lineVAO)
	gl.GenBuffers(1, &bb.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, bb.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(points)*4, unsafe.Pointer(&points[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return bb
}

func (bb *boxBuffers) drawTriangles() {
	gl.BindVertexArray(bb.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, bb.indexCount, gl.UNSIGNED_INT, 0)
}

func (bb *boxBuffers) drawLines() {
	gl.BindVertexArray(bb.lineVAO)
	gl.DrawArrays(gl.LINES, 0, bb.lineCount)
}

func (bb *boxBuffers) release() {
	gl.DeleteVertexArrays(1, &bb.vao)
	gl.DeleteBuffers(1, &bb.vbo)
	gl.DeleteBuffers(1, &bb.ebo)
	gl.DeleteVertexArrays(1, &bb.lineVAO)
	gl.DeleteBuffers(1, &bb.lineVBO)
}

// textureSlot is a GPU texture bound to the identity of the atlas it
// was uploaded from.
type textureSlot struct {
	id     uint32
	source uint64
}

// sync uploads t if it differs from the current contents. A nil texture
// releases the slot.
func (s *textureSlot) sync(t *skin.Texture) {
	if t == nil {
		s.release()
		return
	}
	if s.id != 0 && s.source == t.ID() {
		return
	}
	if s.id == 0 {
		gl.GenTextures(1, &s.id)
	}
	gl.BindTexture(gl.TEXTURE_2D, s.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.Width()), int32(t.Height()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&t.Pix()[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	s.source = t.ID()
	logger.Debug("texture uploaded",
		zap.Uint32("gl", s.id),
		zap.Uint64("texture", t.ID()),
		zap.Int("width", t.Width()),
		zap.Int("height", t.Height()),
	)
}

func (s *textureSlot) release() {
	if s.id != 0 {
		gl.DeleteTextures(1, &s.id)
	}
	s.id, s.source = 0, 0
}
