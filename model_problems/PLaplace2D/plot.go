package PLaplace2D

import (
	"fmt"
	"time"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"
	"github.com/notargets/goiga/InputParameters"
	"github.com/notargets/goiga/geometry2D"
)

/*
PlotSolution renders the solution shaded over the multi patch domain. Each
patch is sampled on a Resolution square parameter lattice and triangulated,
the patch meshes merge into one render mesh and the patch outlines draw on
top. The call blocks for FrameTime, or forever when FrameTime is zero, so
the window stays up after a run
*/
func (pl *PLaplace) PlotSolution(pm InputParameters.PlotMeta) (err error) {
	if pl.WLoc == nil {
		return fmt.Errorf("no solution fields, run Iterate")
	}
	res := pm.Resolution
	if res < 2 {
		res = 33
	}
	var (
		meshes []geometry.TriMesh
		field  []float32
	)
	for np := range pl.MP.Patches {
		X, Y, F := pl.sampleField(np, res)
		gm, eM := geometry2D.StructuredMesh(X, Y, res, res)
		if eM != nil {
			return eM
		}
		meshes = append(meshes, gm)
		field = append(field, F...)
	}
	gm := geometry2D.MergeMeshes(meshes...)
	fMin, fMax := fieldMinMax(field)
	if pm.FieldMinP != nil {
		fMin = float32(*pm.FieldMinP)
	}
	if pm.FieldMaxP != nil {
		fMax = float32(*pm.FieldMaxP)
	}
	fmt.Printf("fMin: %f, fMax: %f\n", fMin, fMax)
	xMin, xMax, yMin, yMax := geometry2D.Bounds(gm.XY)
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	vs := geometry.VertexScalar{
		TMesh:       &gm,
		FieldValues: field,
	}
	ch.AddShadedVertexScalar(&vs, fMin, fMax)
	ch.AddTriMesh(gm)
	ch.AddLine(pl.outlineSegments(res), utils2.RED)
	if pm.FrameTime > 0 {
		time.Sleep(pm.FrameTime)
		return
	}
	for {
	}
}

// sampleField evaluates patch np and its solution field on a res by res
// lattice over the parameter domain
func (pl *PLaplace) sampleField(np, res int) (X, Y []float64, F []float32) {
	var (
		patch  = pl.MP.Patches[np]
		tb     = patch.Basis
		u0, u1 = tb.U.T[0], tb.U.T[len(tb.U.T)-1]
		v0, v1 = tb.V.T[0], tb.V.T[len(tb.V.T)-1]
	)
	X = make([]float64, 0, res*res)
	Y = make([]float64, 0, res*res)
	F = make([]float32, 0, res*res)
	for j := 0; j < res; j++ {
		v := v0 + (v1-v0)*float64(j)/float64(res-1)
		for i := 0; i < res; i++ {
			u := u0 + (u1-u0)*float64(i)/float64(res-1)
			x, y := patch.Eval(u, v)
			X = append(X, x)
			Y = append(Y, y)
			F = append(F, float32(tb.EvalField(pl.WLoc[np], u, v)))
		}
	}
	return
}

// outlineSegments traces the four boundary curves of every patch as line
// segments
func (pl *PLaplace) outlineSegments(res int) (line []float32) {
	for _, patch := range pl.MP.Patches {
		var (
			tb     = patch.Basis
			u0, u1 = tb.U.T[0], tb.U.T[len(tb.U.T)-1]
			v0, v1 = tb.V.T[0], tb.V.T[len(tb.V.T)-1]
		)
		walk := func(f func(t float64) (x, y float64)) {
			for i := 0; i < res-1; i++ {
				var (
					t0     = float64(i) / float64(res-1)
					t1     = float64(i+1) / float64(res-1)
					xa, ya = f(t0)
					xb, yb = f(t1)
				)
				line = append(line, float32(xa), float32(ya),
					float32(xb), float32(yb))
			}
		}
		walk(func(t float64) (x, y float64) {
			return patch.Eval(u0+(u1-u0)*t, v0)
		})
		walk(func(t float64) (x, y float64) {
			return patch.Eval(u0+(u1-u0)*t, v1)
		})
		walk(func(t float64) (x, y float64) {
			return patch.Eval(u0, v0+(v1-v0)*t)
		})
		walk(func(t float64) (x, y float64) {
			return patch.Eval(u1, v0+(v1-v0)*t)
		})
	}
	return
}

func fieldMinMax(field []float32) (fMin, fMax float32) {
	for i, f := range field {
		if i == 0 {
			fMin = f
			fMax = f
		}
		if f < fMin {
			fMin = f
		}
		if f > fMax {
			fMax = f
		}
	}
	return
}
