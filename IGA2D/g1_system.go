package IGA2D

import (
	"github.com/notargets/goiga/utils"
)

// CoefTol is the squared coefficient threshold below which an entry is not
// inserted into the transformation
const CoefTol = 1.e-25

// BasisGeometry is one consolidated basis function, given by its local
// coefficient vector on each patch that carries it
type BasisGeometry struct {
	Patches []int
	Coefs   []utils.Vector
}

// NewBasisGeometry allocates zero coefficient vectors for the given patches
func NewBasisGeometry(mp *MultiPatch, patches ...int) (bg BasisGeometry) {
	bg.Patches = patches
	bg.Coefs = make([]utils.Vector, len(patches))
	for k, np := range patches {
		bg.Coefs[k] = utils.NewVector(mp.Patches[np].Basis.Dim())
	}
	return
}

/*
G1System assembles the sparse transformation D between the consolidated
degrees of freedom and the stacked patch local coefficients. The system has
two phases: while building, the per entity insertion operations scatter
basis function coefficients into D, then Finalize appends the interior
identity block, splits D into the free part D0 and the boundary part Dbdy
and freezes the system. Solve condenses the prescribed boundary values out
of the reduced operator and returns the full length solution vector
*/
type G1System struct {
	MP     *MultiPatch
	Topo   *Topology
	Tables *OffsetTables

	D  utils.DOK
	g1 utils.Vector

	finalized bool
	DCsr      utils.CSR
	D0        utils.CSR
	Dbdy      utils.CSR
}

func NewG1System(mp *MultiPatch, policy TopologyPolicy) (sys *G1System, err error) {
	topo, err := ClassifyTopology(mp, policy)
	if err != nil {
		return nil, err
	}
	tables, err := BuildOffsetTables(mp, topo)
	if err != nil {
		return nil, err
	}
	sys = &G1System{
		MP:     mp,
		Topo:   topo,
		Tables: tables,
		D:      utils.NewDOK(tables.Total(), tables.DimK()),
		g1:     utils.NewVector(tables.Total()),
	}
	return
}

func (sys *G1System) DimK() int      { return sys.Tables.DimK() }
func (sys *G1System) DimG1Dofs() int { return sys.Tables.DimG1Dofs() }
func (sys *G1System) DimG1Bdy() int  { return sys.Tables.DimG1Bdy() }
func (sys *G1System) Total() int     { return sys.Tables.Total() }

// insert scatters one basis function into row, dropping entries below the
// coefficient threshold
func (sys *G1System) insert(row int, bg BasisGeometry,
	column func(np, loc int) (int, error)) error {
	for k, np := range bg.Patches {
		var (
			coefs = bg.Coefs[k]
			dim   = sys.MP.Patches[np].Basis.Dim()
		)
		if coefs.Len() != dim {
			return configErrorf("insert",
				"function has %d coefficients on patch %d, basis has %d",
				coefs.Len(), np, dim)
		}
		for j := 0; j < dim; j++ {
			val := coefs.AtVec(j)
			if val*val <= CoefTol {
				continue
			}
			col, err := column(np, j)
			if err != nil {
				return err
			}
			sys.D.Set(row, col, val)
		}
	}
	return nil
}

// InsertInterfaceEdge inserts the interface functions of interface iID,
// ordered plus space first then minus space. Under the two patch Dirichlet
// rules the full spaces are expected and the endpoint functions are
// redirected to their vertices, otherwise the pre trimmed block is expected
func (sys *G1System) InsertInterfaceEdge(iID int, funcs []BasisGeometry) error {
	if sys.finalized {
		return ErrFinalized
	}
	for bfID, bg := range funcs {
		row, err := sys.Tables.InterfaceRow(iID, bfID)
		if err != nil {
			return err
		}
		if err = sys.insert(row, bg, sys.Tables.InterfaceColumn); err != nil {
			return err
		}
	}
	return nil
}

// InsertBoundaryEdge inserts the functions of boundary side bID, prescribed
// functions first in the insertion order, then the free ones
func (sys *G1System) InsertBoundaryEdge(bID int, funcs []BasisGeometry) error {
	if sys.finalized {
		return ErrFinalized
	}
	for bfID, bg := range funcs {
		row, err := sys.Tables.BoundaryRow(bID, bfID)
		if err != nil {
			return err
		}
		if err = sys.insert(row, bg, sys.Tables.PatchColumn); err != nil {
			return err
		}
	}
	return nil
}

// InsertVertex inserts the functions of vertex vID, free functions first
func (sys *G1System) InsertVertex(vID int, funcs []BasisGeometry) error {
	if sys.finalized {
		return ErrFinalized
	}
	for bfID, bg := range funcs {
		row, err := sys.Tables.VertexRow(vID, bfID)
		if err != nil {
			return err
		}
		if err = sys.insert(row, bg, sys.Tables.PatchColumn); err != nil {
			return err
		}
	}
	return nil
}

// Finalize appends the interior identity block, builds the free and
// boundary selections D0 and Dbdy and stores the prescribed boundary
// values. boundaryVals must have length DimG1Bdy, or be the zero Vector
// for homogeneous data. Finalize can only run once
func (sys *G1System) Finalize(boundaryVals utils.Vector) error {
	if sys.finalized {
		return ErrFinalized
	}
	var (
		ot    = sys.Tables
		dofs  = ot.DimG1Dofs()
		bdy   = ot.DimG1Bdy()
		total = ot.Total()
		nVals = 0
	)
	if boundaryVals.V != nil {
		nVals = boundaryVals.Len()
	}
	if nVals != 0 && nVals != bdy {
		return configErrorf("finalize",
			"boundary values have length %d, want %d", nVals, bdy)
	}
	// Interior identity window, the first two and last two rings of each
	// patch stay with their entities
	for np, p := range sys.MP.Patches {
		var (
			dimU = p.Basis.DimU()
			dimV = p.Basis.DimV()
		)
		for j := 2; j < dimV-2; j++ {
			for i := 2; i < dimU-2; i++ {
				loc := j*dimU + i
				sys.D.Set(ot.InteriorRow(np, loc), ot.PatchLocal[np]+loc, 1)
			}
		}
	}
	sys.DCsr = sys.D.ToCSR()

	// Selection matrices for the free and the prescribed rows
	B0 := utils.NewDOK(total, total)
	for i := 0; i < dofs; i++ {
		B0.Set(i, i, 1)
	}
	Bbdy := utils.NewDOK(total, total)
	for i := 0; i < bdy; i++ {
		Bbdy.Set(dofs+i, dofs+i, 1)
	}
	for np, p := range sys.MP.Patches {
		var (
			dimU = p.Basis.DimU()
			dimV = p.Basis.DimV()
		)
		for j := 2; j < dimV-2; j++ {
			for i := 2; i < dimU-2; i++ {
				ii := ot.InteriorRow(np, j*dimU+i)
				B0.Set(ii, ii, 1)
			}
		}
	}
	sys.D0 = utils.NewCSR(total, ot.DimK()).Mul(B0.ToCSR().M, sys.DCsr.M)
	sys.Dbdy = utils.NewCSR(total, ot.DimK()).Mul(Bbdy.ToCSR().M, sys.DCsr.M)

	if nVals != 0 {
		for i := 0; i < bdy; i++ {
			sys.g1.SetVec(dofs+i, boundaryVals.AtVec(i))
		}
	}
	sys.finalized = true
	return nil
}

// Finalized reports whether Finalize has run
func (sys *G1System) Finalized() bool { return sys.finalized }

// Transformation returns the assembled D after Finalize
func (sys *G1System) Transformation() (utils.CSR, error) {
	if !sys.finalized {
		return utils.CSR{}, ErrNotFinalized
	}
	return sys.DCsr, nil
}

// ReducedOperator forms A = D0 K D0^T for a block diagonal patch local
// operator K
func (sys *G1System) ReducedOperator(K utils.CSR) (A utils.CSR, err error) {
	if !sys.finalized {
		return A, ErrNotFinalized
	}
	kr, kc := K.Dims()
	if kr != sys.DimK() || kc != sys.DimK() {
		return A, configErrorf("solve",
			"operator is %dx%d, want %dx%d", kr, kc, sys.DimK(), sys.DimK())
	}
	var (
		total = sys.Total()
		tmp   = utils.NewCSR(total, sys.DimK()).Mul(sys.D0.M, K.M)
	)
	A = utils.NewCSR(total, total).Mul(tmp.M, sys.D0.T())
	return
}

// ReducedRHS forms F = D0 f - D0 K Dbdy^T g1, condensing the prescribed
// boundary values out of the load
func (sys *G1System) ReducedRHS(K utils.CSR, f utils.Vector) (F utils.Vector, err error) {
	if !sys.finalized {
		return F, ErrNotFinalized
	}
	if f.Len() != sys.DimK() {
		return F, configErrorf("solve",
			"load vector has length %d, want %d", f.Len(), sys.DimK())
	}
	var (
		yb = sys.Dbdy.MulVecT(sys.g1) // Dbdy^T g1
		yk = K.MulVec(yb)             // K Dbdy^T g1
	)
	F = sys.D0.MulVec(f).Subtract(sys.D0.MulVec(yk))
	return
}

// Solve reduces the patch local system K x = f onto the consolidated
// unknowns and solves it. The returned vector has the full row length, the
// leading DimG1Dofs entries are the free values, the trailing DimK entries
// the interior patch local values
func (sys *G1System) Solve(K utils.CSR, f utils.Vector,
	solver SparseSolver) (x utils.Vector, err error) {
	A, err := sys.ReducedOperator(K)
	if err != nil {
		return
	}
	F, err := sys.ReducedRHS(K, f)
	if err != nil {
		return
	}
	x, err = solver.Solve(A, F)
	if err != nil {
		err = &SolverFailure{Solver: solver.Name(), Err: err}
	}
	return
}

// ReconstructSparse returns the rows of D scaled by the solution, free rows
// by their solved values and prescribed rows by the boundary data, with one
// extra row at the bottom carrying the interior solution. Column sums give
// the patch local solution field
func (sys *G1System) ReconstructSparse(x utils.Vector) (R utils.CSR, err error) {
	if !sys.finalized {
		return R, ErrNotFinalized
	}
	if x.Len() != sys.Total() {
		return R, configErrorf("reconstruct",
			"solution has length %d, want %d", x.Len(), sys.Total())
	}
	var (
		dofs = sys.DimG1Dofs()
		bdy  = sys.DimG1Bdy()
		dok  = utils.NewDOK(dofs+bdy+1, sys.DimK())
	)
	sys.DCsr.DoNonZero(func(i, j int, v float64) {
		switch {
		case i < dofs:
			dok.Set(i, j, v*x.AtVec(i))
		case i < dofs+bdy:
			dok.Set(i, j, v*sys.g1.AtVec(i))
		}
	})
	for i := 0; i < sys.DimK(); i++ {
		dok.Set(dofs+bdy, i, x.AtVec(dofs+bdy+i))
	}
	R = dok.ToCSR()
	return
}

// ReconstructField accumulates the per entity contributions into one local
// coefficient vector per patch
func (sys *G1System) ReconstructField(x utils.Vector) (fields []utils.Vector, err error) {
	if !sys.finalized {
		return nil, ErrNotFinalized
	}
	if x.Len() != sys.Total() {
		return nil, configErrorf("reconstruct",
			"solution has length %d, want %d", x.Len(), sys.Total())
	}
	type entry struct {
		col int
		val float64
	}
	var (
		ot      = sys.Tables
		rowEnts = make([][]entry, sys.Total())
	)
	sys.DCsr.DoNonZero(func(i, j int, v float64) {
		rowEnts[i] = append(rowEnts[i], entry{j, v})
	})
	fields = make([]utils.Vector, len(sys.MP.Patches))
	for np, p := range sys.MP.Patches {
		fields[np] = utils.NewVector(p.Basis.Dim())
	}
	addRow := func(np, row int, table utils.Index, scale float64) {
		var (
			lo  = table[np]
			dim = sys.MP.Patches[np].Basis.Dim()
			f   = fields[np]
		)
		for _, e := range rowEnts[row] {
			if e.col >= lo && e.col < lo+dim {
				f.SetVec(e.col-lo, f.AtVec(e.col-lo)+scale*e.val)
			}
		}
	}
	for iID, iface := range sys.MP.Interfaces {
		for row := ot.Interface[iID]; row < ot.Interface[iID+1]; row++ {
			addRow(iface.A.Patch, row, ot.InterfaceLocal, x.AtVec(row))
			addRow(iface.B.Patch, row, ot.InterfaceLocal, x.AtVec(row))
		}
	}
	for bID, b := range sys.MP.Boundaries {
		for row := ot.BdyEdge[bID]; row < ot.BdyEdge[bID+1]; row++ {
			addRow(b.Patch, row, ot.PatchLocal, sys.g1.AtVec(row))
		}
		for row := ot.Edge[bID]; row < ot.Edge[bID+1]; row++ {
			addRow(b.Patch, row, ot.PatchLocal, x.AtVec(row))
		}
	}
	for vID, v := range sys.MP.Vertices {
		var (
			kind = sys.Topo.Vertices[vID].Kind
		)
		for _, np := range v.Patches() {
			for row := ot.BdyVertex[vID]; row < ot.BdyVertex[vID+1]; row++ {
				if kind == VertexInterfaceBoundary {
					addRow(np, row, ot.InterfaceLocal, sys.g1.AtVec(row))
				} else {
					addRow(np, row, ot.PatchLocal, sys.g1.AtVec(row))
				}
			}
			for row := ot.Vertex[vID]; row < ot.Vertex[vID+1]; row++ {
				addRow(np, row, ot.PatchLocal, x.AtVec(row))
			}
		}
	}
	// Interior values pass through unchanged
	for np, p := range sys.MP.Patches {
		var (
			dimU = p.Basis.DimU()
			dimV = p.Basis.DimV()
		)
		for j := 2; j < dimV-2; j++ {
			for i := 2; i < dimU-2; i++ {
				loc := j*dimU + i
				fields[np].SetVec(loc, fields[np].AtVec(loc)+
					x.AtVec(ot.InteriorRow(np, loc)))
			}
		}
	}
	return
}

// EmptyCategoryRows returns the rows in the free and prescribed blocks that
// received no entry. A nonempty result means some allocated unknown touches
// no patch coefficient
func (sys *G1System) EmptyCategoryRows() (rows []int, err error) {
	if !sys.finalized {
		return nil, ErrNotFinalized
	}
	var (
		n       = sys.DimG1Dofs() + sys.DimG1Bdy()
		touched = make([]bool, n)
	)
	sys.DCsr.DoNonZero(func(i, j int, v float64) {
		if i < n {
			touched[i] = true
		}
	})
	for i, t := range touched {
		if !t {
			rows = append(rows, i)
		}
	}
	return
}
