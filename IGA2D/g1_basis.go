package IGA2D

import (
	"math"

	"github.com/notargets/goiga/spline1D"
	"github.com/notargets/goiga/utils"
)

/*
The affine generator builds the consolidated basis functions for affine
patches under the two patch rules.

Along an interface the trace space splits into a plus space, degree p with
regularity r+1, and a minus space, degree p-1 with regularity r. A plus
function has the plus basis function as its trace and zero transversal
derivative, a minus function has zero trace and the minus basis function as
its transversal derivative. Both kinds are supported on the first two rings
of coefficients next to the interface, and with the working bases carrying
interior regularity at most p-2 the trace projections are exact.

Boundary sides keep their two coefficient rings as individual functions, the
outer ring prescribed and the inner ring free. Each boundary corner keeps
its two by two coefficient block, the inner diagonal free and the rest
prescribed
*/

// ringIndices lists the flat local indices of coefficient ring `ring` next
// to the given side, ordered along the edge parameter
func ringIndices(tb TensorBasis, s Side, ring int) (idx utils.Index) {
	var (
		dimU, dimV = tb.DimU(), tb.DimV()
	)
	switch s {
	case South:
		idx = make(utils.Index, dimU)
		for i := 0; i < dimU; i++ {
			idx[i] = tb.Index(i, ring)
		}
	case North:
		idx = make(utils.Index, dimU)
		for i := 0; i < dimU; i++ {
			idx[i] = tb.Index(i, dimV-1-ring)
		}
	case West:
		idx = make(utils.Index, dimV)
		for j := 0; j < dimV; j++ {
			idx[j] = tb.Index(ring, j)
		}
	case East:
		idx = make(utils.Index, dimV)
		for j := 0; j < dimV; j++ {
			idx[j] = tb.Index(dimU-1-ring, j)
		}
	}
	return
}

// sideParam maps the edge parameter t to patch coordinates on side s
func sideParam(s Side, t float64) (u, v float64) {
	switch s {
	case South:
		return t, 0
	case North:
		return t, 1
	case West:
		return 0, t
	case East:
		return 1, t
	}
	panic("side out of range")
}

// transversalDerivs returns the first derivatives of the outer and inner
// ring 1D basis functions at the side, in the transversal direction
func transversalDerivs(tb TensorBasis, s Side) (d0, d1 float64) {
	var (
		kv spline1D.KnotVector
	)
	if s.Dir() == 0 {
		kv = tb.V
	} else {
		kv = tb.U
	}
	p := kv.P
	if s.IsLow() {
		ders := kv.DersBasisFuns(kv.Span(0), 0, 1)
		d0, d1 = ders.At(1, 0), ders.At(1, 1)
	} else {
		ders := kv.DersBasisFuns(kv.Span(1), 1, 1)
		d0, d1 = ders.At(1, p), ders.At(1, p-1)
	}
	return
}

// transversalProjection returns the signed projections of both patch
// transversal tangents onto the common crossing direction, taken as the
// outward direction of side A at the edge midpoint
func transversalProjection(mp *MultiPatch, a, b PatchSide) (wA, wB float64, err error) {
	tangent := func(ps PatchSide) (tx, ty float64) {
		u, v := sideParam(ps.Side, 0.5)
		J := mp.Patches[ps.Patch].Jacobian(u, v)
		tDir := 1 - ps.Side.Dir()
		return J.At(0, tDir), J.At(1, tDir)
	}
	var (
		ax, ay = tangent(a)
		bx, by = tangent(b)
		norm   = math.Hypot(ax, ay)
	)
	if norm < utils.NODETOL {
		return 0, 0, configErrorf("generator",
			"degenerate transversal tangent on patch %d", a.Patch)
	}
	dx, dy := ax/norm, ay/norm
	if a.Side.IsLow() {
		dx, dy = -dx, -dy
	}
	wA = dx*ax + dy*ay
	wB = dx*bx + dy*by
	if math.Abs(wB) < utils.NODETOL {
		return 0, 0, configErrorf("generator",
			"transversal tangents of patches %d and %d do not cross the"+
				" interface", a.Patch, b.Patch)
	}
	return
}

// basisValue evaluates the single 1D basis function k at u
func basisValue(kv spline1D.KnotVector, k int, u float64) float64 {
	first, N := kv.EvalBasis(u)
	if k < first || k >= first+len(N) {
		return 0
	}
	return N[k-first]
}

func sameKnots(a, b spline1D.KnotVector) bool {
	if a.P != b.P || len(a.T) != len(b.T) {
		return false
	}
	for i := range a.T {
		if math.Abs(a.T[i]-b.T[i]) > utils.NODETOL {
			return false
		}
	}
	return true
}

// GenerateInterfaceFunctions builds the plus and minus functions of
// interface iID, plus space first. Under the Neumann rules the endpoint
// functions are left out, they move to the vertex generators
func GenerateInterfaceFunctions(mp *MultiPatch, topo *Topology,
	iID int) (funcs []BasisGeometry, err error) {
	return generateInterface(mp, topo, iID, topo.Policy.Neumann)
}

func generateInterface(mp *MultiPatch, topo *Topology, iID int,
	trimEndpoints bool) (funcs []BasisGeometry, err error) {
	if !topo.Policy.TwoPatch {
		return nil, configErrorf("generator",
			"the affine generator implements the two patch rules only")
	}
	var (
		it    = topo.Interfaces[iID]
		iface = mp.Interfaces[iID]
		kvA   = mp.SideKnots(iface.A)
		kvB   = mp.SideKnots(iface.B)
	)
	if it.Kink[0] || it.Kink[1] {
		return nil, configErrorf("generator",
			"interface %d has a boundary kink, not covered by the affine"+
				" generator", iID)
	}
	if !sameKnots(kvA, kvB) {
		return nil, configErrorf("generator",
			"interface %d sides carry different knot vectors", iID)
	}
	for _, np := range []int{iface.A.Patch, iface.B.Patch} {
		if !mp.Patches[np].IsAffine() {
			return nil, configErrorf("generator",
				"patch %d is not affine", np)
		}
	}
	var (
		p = it.P
		r = it.R
		n = it.N
	)
	if r < 0 {
		return nil, configErrorf("generator",
			"interface %d has regularity %d", iID, r)
	}
	var (
		plusKV  = spline1D.NewUniformKnotsRegularity(p, n, r+1)
		minusKV = spline1D.NewUniformKnotsRegularity(p-1, n, r)
	)
	if plusKV.NumBasis() != it.SizePlus || minusKV.NumBasis() != it.SizeMinus {
		return nil, configErrorf("generator",
			"interface %d expects %d+%d functions, the affine spaces have"+
				" %d+%d", iID, it.SizePlus, it.SizeMinus,
			plusKV.NumBasis(), minusKV.NumBasis())
	}
	var (
		pA, pB     = iface.A.Patch, iface.B.Patch
		ring0A     = ringIndices(mp.Patches[pA].Basis, iface.A.Side, 0)
		ring1A     = ringIndices(mp.Patches[pA].Basis, iface.A.Side, 1)
		ring0B     = ringIndices(mp.Patches[pB].Basis, iface.B.Side, 0)
		ring1B     = ringIndices(mp.Patches[pB].Basis, iface.B.Side, 1)
		d0A, d1A   = transversalDerivs(mp.Patches[pA].Basis, iface.A.Side)
		d0B, d1B   = transversalDerivs(mp.Patches[pB].Basis, iface.B.Side)
		wA, wB, eT = transversalProjection(mp, iface.A, iface.B)
	)
	if eT != nil {
		return nil, eT
	}
	plusFunc := func(k int) (bg BasisGeometry, err error) {
		a, err := kvA.ProjectL2(func(t float64) float64 {
			return basisValue(plusKV, k, t)
		})
		if err != nil {
			return
		}
		bg = NewBasisGeometry(mp, pA, pB)
		for j := range ring0A {
			bg.Coefs[0].SetVec(ring0A[j], a.AtVec(j))
			bg.Coefs[0].SetVec(ring1A[j], -a.AtVec(j)*d0A/d1A)
			bg.Coefs[1].SetVec(ring0B[j], a.AtVec(j))
			bg.Coefs[1].SetVec(ring1B[j], -a.AtVec(j)*d0B/d1B)
		}
		return
	}
	minusFunc := func(k int) (bg BasisGeometry, err error) {
		b, err := kvA.ProjectL2(func(t float64) float64 {
			return basisValue(minusKV, k, t)
		})
		if err != nil {
			return
		}
		bg = NewBasisGeometry(mp, pA, pB)
		for j := range ring1A {
			bg.Coefs[0].SetVec(ring1A[j], b.AtVec(j)*wA/d1A)
			bg.Coefs[1].SetVec(ring1B[j], b.AtVec(j)*wB/d1B)
		}
		return
	}
	var (
		plusLo, plusHi   = 0, it.SizePlus
		minusLo, minusHi = 0, it.SizeMinus
	)
	if trimEndpoints {
		plusLo, plusHi = 2, it.SizePlus-2
		minusLo, minusHi = 2, it.SizeMinus-2
	}
	for k := plusLo; k < plusHi; k++ {
		bg, err := plusFunc(k)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, bg)
	}
	for k := minusLo; k < minusHi; k++ {
		bg, err := minusFunc(k)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, bg)
	}
	return
}

// GenerateBoundaryFunctions builds the two ring functions of boundary side
// bID, the outer ring first. The first and last two functions of each ring
// belong to the corner blocks and are left out
func GenerateBoundaryFunctions(mp *MultiPatch, topo *Topology,
	bID int) (funcs []BasisGeometry, err error) {
	if !topo.Policy.TwoPatch {
		return nil, configErrorf("generator",
			"the affine generator implements the two patch rules only")
	}
	var (
		b     = mp.Boundaries[bID]
		basis = mp.Patches[b.Patch].Basis
		ring0 = ringIndices(basis, b.Side, 0)
		ring1 = ringIndices(basis, b.Side, 1)
		size  = len(ring0)
	)
	for _, ring := range []utils.Index{ring0, ring1} {
		for idx := 2; idx < size-2; idx++ {
			bg := NewBasisGeometry(mp, b.Patch)
			bg.Coefs[0].SetVec(ring[idx], 1)
			funcs = append(funcs, bg)
		}
	}
	return
}

// cornerBlock returns the 2x2 corner coefficient indices for patch corner c:
// the corner itself, its neighbor along u, its neighbor along v and the
// inner diagonal
func cornerBlock(tb TensorBasis, c int) (corner, uNb, vNb, diag int) {
	var (
		eu, ev = 0, 0
		su, sv = 1, 1
	)
	if c == 1 || c == 3 {
		eu, su = tb.DimU()-1, -1
	}
	if c == 2 || c == 3 {
		ev, sv = tb.DimV()-1, -1
	}
	corner = tb.Index(eu, ev)
	uNb = tb.Index(eu+su, ev)
	vNb = tb.Index(eu, ev+sv)
	diag = tb.Index(eu+su, ev+sv)
	return
}

// GenerateVertexFunctions builds the functions of vertex vID. Boundary
// vertices keep their corner block, the inner diagonal first as the free
// function. Interface boundary vertices receive their functions through the
// interface redirection under the Dirichlet rules, and the cut endpoint
// functions of their interface under the Neumann rules. Interior vertices
// have no functions under the two patch rules
func GenerateVertexFunctions(mp *MultiPatch, topo *Topology,
	vID int) (funcs []BasisGeometry, err error) {
	if !topo.Policy.TwoPatch {
		return nil, configErrorf("generator",
			"the affine generator implements the two patch rules only")
	}
	var (
		vt = topo.Vertices[vID]
		v  = mp.Vertices[vID]
	)
	switch vt.Kind {
	case VertexInterior:
		return nil, nil
	case VertexBoundary:
		var (
			pc                     = v.Corners[0]
			basis                  = mp.Patches[pc.Patch].Basis
			corner, uNb, vNb, diag = cornerBlock(basis, pc.Corner)
		)
		for _, loc := range []int{diag, corner, uNb, vNb} {
			bg := NewBasisGeometry(mp, pc.Patch)
			bg.Coefs[0].SetVec(loc, 1)
			funcs = append(funcs, bg)
		}
		return funcs, nil
	default: // interface boundary
		if !topo.Policy.Neumann {
			// the interface insertion redirects its endpoint functions here
			return nil, nil
		}
		return generateNeumannEndpoint(mp, topo, vID)
	}
}

// generateNeumannEndpoint rebuilds the four interface functions cut from
// the interface block at this endpoint, outermost first
func generateNeumannEndpoint(mp *MultiPatch, topo *Topology,
	vID int) (funcs []BasisGeometry, err error) {
	for iID, iface := range mp.Interfaces {
		if iface.VStart != vID && iface.VEnd != vID {
			continue
		}
		full, err := generateFullInterface(mp, topo, iID)
		if err != nil {
			return nil, err
		}
		var (
			it = topo.Interfaces[iID]
			sp = it.SizePlus
			sm = it.SizeMinus
		)
		if iface.VStart == vID {
			funcs = append(funcs, full[0], full[1], full[sp], full[sp+1])
		} else {
			funcs = append(funcs,
				full[sp-1], full[sp-2], full[sp+sm-1], full[sp+sm-2])
		}
		return funcs, nil
	}
	return nil, configErrorf("generator",
		"vertex %d has no interface", vID)
}

// generateFullInterface builds the untrimmed plus and minus spaces
func generateFullInterface(mp *MultiPatch, topo *Topology,
	iID int) ([]BasisGeometry, error) {
	return generateInterface(mp, topo, iID, false)
}

// PopulateAffineG1System runs the affine generator over every entity of the
// system's domain and inserts the results
func PopulateAffineG1System(sys *G1System) error {
	for iID := range sys.MP.Interfaces {
		funcs, err := GenerateInterfaceFunctions(sys.MP, sys.Topo, iID)
		if err != nil {
			return err
		}
		if err = sys.InsertInterfaceEdge(iID, funcs); err != nil {
			return err
		}
	}
	for bID := range sys.MP.Boundaries {
		funcs, err := GenerateBoundaryFunctions(sys.MP, sys.Topo, bID)
		if err != nil {
			return err
		}
		if err = sys.InsertBoundaryEdge(bID, funcs); err != nil {
			return err
		}
	}
	for vID := range sys.MP.Vertices {
		funcs, err := GenerateVertexFunctions(sys.MP, sys.Topo, vID)
		if err != nil {
			return err
		}
		if len(funcs) == 0 {
			continue
		}
		if err = sys.InsertVertex(vID, funcs); err != nil {
			return err
		}
	}
	return nil
}
