package geometry2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredMesh(t *testing.T) {
	{ // 3x2 grid, two cells, four triangles
		X := []float64{0, 0.5, 1, 0, 0.5, 1}
		Y := []float64{0, 0, 0, 1, 1, 1}
		gm, err := StructuredMesh(X, Y, 3, 2)
		assert.NoError(t, err)
		assert.Equal(t, 12, len(gm.XY))
		assert.Len(t, gm.TriVerts, 4)
		assert.Equal(t, [3]int64{0, 1, 4}, gm.TriVerts[0])
		assert.Equal(t, [3]int64{0, 4, 3}, gm.TriVerts[1])
		assert.Equal(t, [3]int64{1, 2, 5}, gm.TriVerts[2])
		assert.Equal(t, [3]int64{1, 5, 4}, gm.TriVerts[3])
		assert.Equal(t, float32(0.5), gm.XY[2])
		assert.Equal(t, float32(1), gm.XY[11])
	}
	{ // Undersized or mismatched inputs are rejected
		_, err := StructuredMesh([]float64{0, 1}, []float64{0, 1}, 2, 1)
		assert.Error(t, err)
		_, err = StructuredMesh([]float64{0, 1, 2}, []float64{0, 1, 2}, 2, 2)
		assert.Error(t, err)
	}
}

func TestMergeMeshes(t *testing.T) {
	X := []float64{0, 1, 0, 1}
	Y := []float64{0, 0, 1, 1}
	gmA, err := StructuredMesh(X, Y, 2, 2)
	assert.NoError(t, err)
	X2 := []float64{1, 2, 1, 2}
	gmB, err := StructuredMesh(X2, Y, 2, 2)
	assert.NoError(t, err)

	gm := MergeMeshes(gmA, gmB)
	assert.Equal(t, 16, len(gm.XY))
	assert.Len(t, gm.TriVerts, 4)
	// Second mesh vertex indices shift past the first mesh's 4 points
	assert.Equal(t, [3]int64{0, 1, 3}, gm.TriVerts[0])
	assert.Equal(t, [3]int64{4, 5, 7}, gm.TriVerts[2])
	assert.Equal(t, [3]int64{4, 7, 6}, gm.TriVerts[3])

	xMin, xMax, yMin, yMax := Bounds(gm.XY)
	assert.Equal(t, float32(0), xMin)
	assert.Equal(t, float32(2), xMax)
	assert.Equal(t, float32(0), yMin)
	assert.Equal(t, float32(1), yMax)
}

func TestInCircumcircle(t *testing.T) {
	{ // Right triangle with circumcenter at the origin, radius sqrt(2)
		assert.True(t, InCircumcircle(-1, -1, 1, -1, -1, 1, 0, 0))
		assert.False(t, InCircumcircle(-1, -1, 1, -1, -1, 1, 2, 2))
		// On the circle counts as outside
		assert.False(t, InCircumcircle(-1, -1, 1, -1, -1, 1, 1, 1))
	}
	{ // Clockwise ordering gives the same answers
		assert.True(t, InCircumcircle(-1, 1, 1, -1, -1, -1, 0, 0))
		assert.False(t, InCircumcircle(-1, 1, 1, -1, -1, -1, 2, 2))
	}
}

func TestDelaunayMesh(t *testing.T) {
	{ // Unit square plus center point
		X := []float64{0, 1, 1, 0, 0.5}
		Y := []float64{0, 0, 1, 1, 0.5}
		gm, err := DelaunayMesh(X, Y)
		assert.NoError(t, err)
		assert.Equal(t, 10, len(gm.XY))
		assert.Len(t, gm.TriVerts, 4)
		// Every triangle circumcircle is empty of the remaining vertices
		nPts := len(gm.XY) / 2
		coord := func(i int64) (x, y float64) {
			return float64(gm.XY[2*i]), float64(gm.XY[2*i+1])
		}
		for _, tv := range gm.TriVerts {
			ax, ay := coord(tv[0])
			bx, by := coord(tv[1])
			cx, cy := coord(tv[2])
			for p := 0; p < nPts; p++ {
				if int64(p) == tv[0] || int64(p) == tv[1] || int64(p) == tv[2] {
					continue
				}
				px, py := coord(int64(p))
				assert.False(t, InCircumcircle(ax, ay, bx, by, cx, cy, px, py))
			}
		}
	}
	{ // Degenerate inputs are rejected
		_, err := DelaunayMesh([]float64{0, 1}, []float64{0, 1})
		assert.Error(t, err)
		_, err = DelaunayMesh([]float64{0, 1, 2}, []float64{0, 1})
		assert.Error(t, err)
	}
}
