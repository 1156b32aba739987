package skin

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestGridLineCount(t *testing.T) {
	m := NewModel(false)

	tests := []struct {
		part Part
		want int
	}{
		{Head, (9 + 9 + 9) * 4},
		{Torso, (9 + 13 + 5) * 4},
		{RightLeg, (5 + 13 + 5) * 4},
		{Cape, (11 + 17 + 2) * 4},
	}
	for _, tt := range tests {
		t.Run(tt.part.String(), func(t *testing.T) {
			assert.Len(t, m.Box(tt.part).GridLines(), tt.want)
		})
	}
}

func TestGridLinesOnSurface(t *testing.T) {
	abs := func(f float32) float32 {
		if f < 0 {
			return -f
		}
		return f
	}
	onSurface := func(p mgl32.Vec3) bool {
		hits := 0
		for i := 0; i < 3; i++ {
			if abs(p[i]) > 0.5+1e-6 {
				return false
			}
			if abs(abs(p[i])-0.5) < 1e-6 {
				hits++
			}
		}
		return hits >= 2
	}

	for _, l := range NewModel(true).Box(RightArm).GridLines() {
		assert.True(t, onSurface(l.A), "start %v lies on a cube edge", l.A)
		assert.True(t, onSurface(l.B), "end %v lies on a cube edge", l.B)
		assert.NotEqual(t, l.A, l.B)
	}
}

func TestGridSlicesEvenlySpaced(t *testing.T) {
	b := NewModel(false).Box(Head)
	lines := b.GridLines()

	// first ring of the x axis is the x=-0.5 slice, ninth is x=+0.5
	assert.InDelta(t, -0.5, lines[0].A[0], 1e-6)
	assert.InDelta(t, -0.375, lines[4].A[0], 1e-6)
	assert.InDelta(t, 0.5, lines[8*4].A[0], 1e-6)
}
