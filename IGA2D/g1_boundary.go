package IGA2D

import (
	"math"

	"github.com/notargets/goiga/utils"
)

// crossingDirection is the outward unit transversal of side a at its
// midpoint, the direction the interface functions differentiate along
func crossingDirection(mp *MultiPatch, a PatchSide) (dx, dy float64, err error) {
	var (
		u, v = sideParam(a.Side, 0.5)
		J    = mp.Patches[a.Patch].Jacobian(u, v)
		tDir = 1 - a.Side.Dir()
		tx   = J.At(0, tDir)
		ty   = J.At(1, tDir)
		norm = math.Hypot(tx, ty)
	)
	if norm < utils.NODETOL {
		return 0, 0, configErrorf("boundary values",
			"degenerate transversal tangent on patch %d", a.Patch)
	}
	dx, dy = tx/norm, ty/norm
	if a.Side.IsLow() {
		dx, dy = -dx, -dy
	}
	return
}

/*
DirichletBoundaryValues projects the Dirichlet datum g onto the prescribed
rows of the system, in the ordering the affine generator produces.

The outer coefficient ring of each boundary side carries the 1D trace
projection of g. Corner blocks take their three prescribed coefficients from
the trace projections of the two sides meeting there. At an interface end
vertex the redirected plus function carries the trace value g at the vertex
and the redirected minus function the derivative of g along the crossing
direction, read off the collinear boundary side
*/
func DirichletBoundaryValues(sys *G1System,
	g func(x, y float64) float64) (vals utils.Vector, err error) {
	var (
		mp   = sys.MP
		topo = sys.Topo
		ot   = sys.Tables
		dofs = ot.DimG1Dofs()
	)
	if !topo.Policy.TwoPatch || topo.Policy.Neumann {
		return vals, configErrorf("boundary values",
			"Dirichlet projection implements the two patch Dirichlet"+
				" rules only")
	}
	vals = utils.NewVector(ot.DimG1Bdy())

	// Trace projection per boundary side
	projs := make([]utils.Vector, len(mp.Boundaries))
	for bID, b := range mp.Boundaries {
		var (
			kvE   = mp.SideKnots(b.PatchSide)
			patch = mp.Patches[b.Patch]
			side  = b.Side
		)
		projs[bID], err = kvE.ProjectL2(func(t float64) float64 {
			u, v := sideParam(side, t)
			x, y := patch.Eval(u, v)
			return g(x, y)
		})
		if err != nil {
			return
		}
		size := kvE.NumBasis()
		for idx := 2; idx < size-2; idx++ {
			row, eR := ot.BoundaryRow(bID, idx-2)
			if eR != nil {
				return vals, eR
			}
			vals.SetVec(row-dofs, projs[bID].AtVec(idx))
		}
	}

	for vID, v := range mp.Vertices {
		switch topo.Vertices[vID].Kind {
		case VertexBoundary:
			if err = cornerValues(sys, projs, vals, vID); err != nil {
				return
			}
		case VertexInterfaceBoundary:
			if err = endpointValues(sys, projs, vals, vID, v, g); err != nil {
				return
			}
		}
	}
	return
}

// cornerValues fills the three prescribed corner coefficients from the two
// trace projections meeting at the vertex
func cornerValues(sys *G1System, projs []utils.Vector, vals utils.Vector,
	vID int) error {
	var (
		mp   = sys.MP
		ot   = sys.Tables
		dofs = ot.DimG1Dofs()
		pc   = mp.Vertices[vID].Corners[0]
	)
	coefAt := func(bID int, inward int) float64 {
		var (
			b    = mp.Boundaries[bID]
			size = mp.SideBasisSize(b.PatchSide)
			pos  = 0
		)
		if b.VEnd == vID {
			pos = size - 1 - inward
		} else {
			pos = inward
		}
		return projs[bID].AtVec(pos)
	}
	var haveU, haveV bool
	var cornerCoef, uCoef, vCoef float64
	for bID, b := range mp.Boundaries {
		if b.Patch != pc.Patch || (b.VStart != vID && b.VEnd != vID) {
			continue
		}
		if b.Side.Dir() == 0 {
			cornerCoef = coefAt(bID, 0)
			uCoef = coefAt(bID, 1)
			haveU = true
		} else {
			vCoef = coefAt(bID, 1)
			haveV = true
		}
	}
	if !haveU || !haveV {
		return configErrorf("boundary values",
			"vertex %d is not enclosed by two boundary sides", vID)
	}
	base := ot.BdyVertex[vID]
	vals.SetVec(base-dofs, cornerCoef)
	vals.SetVec(base+1-dofs, uCoef)
	vals.SetVec(base+2-dofs, vCoef)
	return nil
}

// endpointValues fills the redirected interface endpoint rows, the trace
// value of g at the vertex and its derivative along the crossing direction
func endpointValues(sys *G1System, projs []utils.Vector, vals utils.Vector,
	vID int, v Vertex, g func(x, y float64) float64) error {
	var (
		mp   = sys.MP
		topo = sys.Topo
		ot   = sys.Tables
		dofs = ot.DimG1Dofs()
	)
	if topo.Vertices[vID].NumBdy > 2 {
		return configErrorf("boundary values",
			"vertex %d is next to a kink, not covered by the affine rules",
			vID)
	}
	var iface *Interface
	for i := range mp.Interfaces {
		if mp.Interfaces[i].VStart == vID || mp.Interfaces[i].VEnd == vID {
			iface = &mp.Interfaces[i]
			break
		}
	}
	if iface == nil {
		return configErrorf("boundary values", "vertex %d has no interface",
			vID)
	}
	dx, dy, err := crossingDirection(mp, iface.A)
	if err != nil {
		return err
	}
	// The minus coefficient is the derivative of g along the crossing
	// direction, read from a boundary side collinear with it at the vertex
	var (
		found bool
		mu    float64
	)
	for bID, b := range mp.Boundaries {
		if b.VStart != vID && b.VEnd != vID {
			continue
		}
		var (
			kvE   = mp.SideKnots(b.PatchSide)
			t0    = 0.0
			patch = mp.Patches[b.Patch]
		)
		if b.VEnd == vID {
			t0 = 1.0
		}
		u0, v0 := sideParam(b.Side, t0)
		J := patch.Jacobian(u0, v0)
		tx, ty := J.At(0, b.Side.Dir()), J.At(1, b.Side.Dir())
		cross := tx*dy - ty*dx
		norm2 := tx*tx + ty*ty
		if norm2 < utils.NODETOL || cross*cross > 1.e-16*norm2 {
			continue
		}
		h1 := kvE.EvalDeriv(projs[bID], t0, 1)
		mu = h1 * (dx*tx + dy*ty) / norm2
		found = true
		break
	}
	if !found {
		return configErrorf("boundary values",
			"no boundary side collinear with the crossing direction at"+
				" vertex %d", vID)
	}
	base := ot.BdyVertex[vID]
	vals.SetVec(base-dofs, g(v.XY[0], v.XY[1]))
	vals.SetVec(base+1-dofs, mu)
	return nil
}
