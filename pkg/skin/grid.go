package skin

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GridInflate enlarges a box slightly before its grid is drawn so the
// lines sit above the textured surface.
const GridInflate = 1.001

// Line is a segment in unit-cube space.
type Line struct {
	A, B mgl32.Vec3
}

// gridRings lists, per axis, the four cube edges running along that axis
// as corner index pairs. Consecutive edges share a face, so joining the
// points of one slice in order outlines it.
var gridRings = [3][4][2]int{
	{{0, 3}, {1, 2}, {6, 5}, {7, 4}}, // x
	{{0, 1}, {3, 2}, {4, 5}, {7, 6}}, // y
	{{0, 7}, {1, 6}, {2, 5}, {3, 4}}, // z
}

// GridLines returns the pixel-cell wireframe of the box. For each axis
// the box is sliced at every pixel boundary (size+1 slices) and each slice
// is outlined across the four faces parallel to that axis.
func (b Box) GridLines() []Line {
	var lines []Line
	for axis, ring := range gridRings {
		n := int(math.Round(float64(b.Size[axis])))
		if n < 1 {
			n = 1
		}
		for i := 0; i <= n; i++ {
			t := float32(i) / float32(n)
			var pts [4]mgl32.Vec3
			for k, edge := range ring {
				a, c := unitVertices[edge[0]], unitVertices[edge[1]]
				pts[k] = a.Add(c.Sub(a).Mul(t))
			}
			for k := range pts {
				lines = append(lines, Line{A: pts[k], B: pts[(k+1)%len(pts)]})
			}
		}
	}
	return lines
}
