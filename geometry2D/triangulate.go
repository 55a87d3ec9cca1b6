package geometry2D

import (
	"fmt"
	"math"

	graphics2D "github.com/notargets/avs/geometry"
	"github.com/pradeep-pyro/triangle"
)

/*
Plot meshes for patch solutions. Vertices carry interleaved x,y coordinates
in the XY layout used by the graphics server, so nodal field samples attach
directly as vertex scalars.
*/

// StructuredMesh triangulates an nu x nv logical grid of points stored
// u-major, point (i,j) at index j*nu+i. Each quad cell splits into two
// triangles along its low-left to high-right diagonal, and the output
// vertex numbering matches the input point order.
func StructuredMesh(X, Y []float64, nu, nv int) (gm graphics2D.TriMesh, err error) {
	if nu < 2 || nv < 2 {
		err = fmt.Errorf("structured mesh needs at least 2x2 points, have %dx%d", nu, nv)
		return
	}
	if len(X) != nu*nv || len(Y) != len(X) {
		err = fmt.Errorf("coordinate lengths %d,%d do not match %dx%d grid",
			len(X), len(Y), nu, nv)
		return
	}
	gm = graphics2D.TriMesh{
		XY:       interleaveXY(X, Y),
		TriVerts: make([][3]int64, 0, 2*(nu-1)*(nv-1)),
	}
	for j := 0; j < nv-1; j++ {
		for i := 0; i < nu-1; i++ {
			ll := int64(j*nu + i)
			lr := ll + 1
			ul := ll + int64(nu)
			ur := ul + 1
			gm.TriVerts = append(gm.TriVerts,
				[3]int64{ll, lr, ur},
				[3]int64{ll, ur, ul})
		}
	}
	return
}

// DelaunayMesh triangulates scattered points using the Triangle library.
func DelaunayMesh(X, Y []float64) (gm graphics2D.TriMesh, err error) {
	if len(X) != len(Y) {
		err = fmt.Errorf("coordinate lengths %d,%d do not match", len(X), len(Y))
		return
	}
	if len(X) < 3 {
		err = fmt.Errorf("triangulation needs at least 3 points, have %d", len(X))
		return
	}
	pts := make([][2]float64, len(X))
	for i, x := range X {
		pts[i] = [2]float64{x, Y[i]}
	}
	verts, faces := triangle.Delaunay(pts)
	gm = graphics2D.TriMesh{
		XY:       make([]float32, 2*len(verts)),
		TriVerts: make([][3]int64, len(faces)),
	}
	for i, v := range verts {
		gm.XY[2*i] = float32(v[0])
		gm.XY[2*i+1] = float32(v[1])
	}
	for i, f := range faces {
		for n := 0; n < 3; n++ {
			gm.TriVerts[i][n] = int64(f[n])
		}
	}
	return
}

// MergeMeshes concatenates triangulations into a single mesh, offsetting
// vertex indices so each input keeps its own points.
func MergeMeshes(meshes ...graphics2D.TriMesh) (gm graphics2D.TriMesh) {
	var offset int64
	for _, m := range meshes {
		gm.XY = append(gm.XY, m.XY...)
		for _, tv := range m.TriVerts {
			gm.TriVerts = append(gm.TriVerts,
				[3]int64{tv[0] + offset, tv[1] + offset, tv[2] + offset})
		}
		offset += int64(len(m.XY) / 2)
	}
	return
}

// Bounds returns the coordinate extent of interleaved x,y vertex data.
func Bounds(XY []float32) (xMin, xMax, yMin, yMax float32) {
	for i := 0; i < len(XY)/2; i++ {
		x, y := XY[2*i], XY[2*i+1]
		if i == 0 {
			xMin, xMax, yMin, yMax = x, x, y, y
			continue
		}
		if x < xMin {
			xMin = x
		}
		if x > xMax {
			xMax = x
		}
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}
	return
}

func interleaveXY(X, Y []float64) (xy []float32) {
	xy = make([]float32, 2*len(X))
	for i, x := range X {
		xy[2*i] = float32(x)
		xy[2*i+1] = float32(Y[i])
	}
	return
}

// InCircumcircle reports whether point p lies strictly inside the circle
// through a, b and c. The determinant test assumes counter-clockwise
// ordering of a, b, c, so the orientation sign folds in first.
func InCircumcircle(ax, ay, bx, by, cx, cy, px, py float64) (inside bool) {
	// Handedness, counter-clockwise is (positive) and clockwise is (negative)
	signBit := math.Signbit((bx-ax)*(cy-ay) - (cx-ax)*(by-ay))
	ax_ := ax - px
	ay_ := ay - py
	bx_ := bx - px
	by_ := by - py
	cx_ := cx - px
	cy_ := cy - py
	det := (ax_*ax_+ay_*ay_)*(bx_*cy_-cx_*by_) -
		(bx_*bx_+by_*by_)*(ax_*cy_-cx_*ay_) +
		(cx_*cx_+cy_*cy_)*(ax_*by_-bx_*ay_)
	if signBit {
		return det < 0
	}
	return det > 0
}
