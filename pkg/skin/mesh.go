package skin

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one corner of a triangulated box face in unit-cube space.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Mesh is a triangulated box: four vertices per face and two triangles
// per face, (0,1,2) and (0,2,3).
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// VertexStride is the number of floats per interleaved vertex
// (position, normal, uv).
const VertexStride = 8

// Mesh triangulates the box faces. Positions stay in unit-cube space;
// Matrix carries the box placement.
func (b Box) Mesh() Mesh {
	quads := b.Quads()
	m := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, q := range quads {
		base := uint32(len(m.Vertices))
		n := q.Normal()
		for i, idx := range q.Indices {
			m.Vertices = append(m.Vertices, Vertex{
				Position: unitVertices[idx],
				Normal:   n,
				UV:       q.UV[i],
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Interleave flattens the vertices for upload to a vertex buffer.
func (m Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return out
}

// Triangles returns the mesh as a flat list of vertex triples.
func (m Mesh) Triangles() [][3]Vertex {
	tris := make([][3]Vertex, 0, len(m.Indices)/3)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, [3]Vertex{
			m.Vertices[m.Indices[i]],
			m.Vertices[m.Indices[i+1]],
			m.Vertices[m.Indices[i+2]],
		})
	}
	return tris
}
