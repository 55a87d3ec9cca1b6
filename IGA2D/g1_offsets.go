package IGA2D

import (
	"github.com/notargets/goiga/utils"
)

/*
OffsetTables numbers the consolidated degrees of freedom. Seven cumulative
tables partition the global index space:

	Interface      rows of the interface functions, one block per interface
	Edge           free rows of the boundary sides
	Vertex         free rows of the vertices
	BdyEdge        prescribed rows of the boundary sides
	BdyVertex      prescribed rows of the vertices
	PatchLocal     patch local coefficient offsets, starting at zero
	InterfaceLocal patch local offsets used for interface function columns

The first five chain one after another, so rows [0, DimG1Dofs) are the free
unknowns, rows [DimG1Dofs, DimG1Dofs+DimG1Bdy) the prescribed boundary data,
and the trailing DimK rows mirror the patch local numbering.

All row lookups go through InterfaceRow, BoundaryRow and VertexRow. The two
patch Dirichlet rules redirect the endpoint interface functions into the
boundary vertex blocks of the interface end vertices, which the lookups
resolve through the actual topology
*/
type OffsetTables struct {
	Interface      utils.Index
	Edge           utils.Index
	Vertex         utils.Index
	BdyEdge        utils.Index
	BdyVertex      utils.Index
	PatchLocal     utils.Index
	InterfaceLocal utils.Index

	mp   *MultiPatch
	topo *Topology
}

// BuildOffsetTables lays out the global numbering from the classified
// topology
func BuildOffsetTables(mp *MultiPatch, topo *Topology) (ot *OffsetTables, err error) {
	var (
		nP = len(mp.Patches)
		nI = len(mp.Interfaces)
		nB = len(mp.Boundaries)
		nV = len(mp.Vertices)
	)
	if len(topo.Interfaces) != nI || len(topo.Boundaries) != nB ||
		len(topo.Vertices) != nV {
		return nil, configErrorf("offsets",
			"topology does not match the domain")
	}
	ot = &OffsetTables{mp: mp, topo: topo}

	ot.PatchLocal = utils.NewIndex(nP + 1)
	for np, p := range mp.Patches {
		ot.PatchLocal[np+1] = ot.PatchLocal[np] + p.Basis.Dim()
	}
	// A single basis serves geometry and analysis, so the interface column
	// table coincides with the patch local table
	ot.InterfaceLocal = utils.NewIndex(nP+1, ot.PatchLocal)

	ot.Interface = utils.NewIndex(nI + 1)
	for i, it := range topo.Interfaces {
		ot.Interface[i+1] = ot.Interface[i] + it.NumFunctions
	}
	ot.Edge = utils.NewIndex(nB + 1)
	ot.BdyEdge = utils.NewIndex(nB + 1)
	for i, bt := range topo.Boundaries {
		ot.Edge[i+1] = ot.Edge[i] + bt.NumEdge
		ot.BdyEdge[i+1] = ot.BdyEdge[i] + bt.NumBdy
	}
	ot.Vertex = utils.NewIndex(nV + 1)
	ot.BdyVertex = utils.NewIndex(nV + 1)
	for i, vt := range topo.Vertices {
		ot.Vertex[i+1] = ot.Vertex[i] + vt.NumDofs
		ot.BdyVertex[i+1] = ot.BdyVertex[i] + vt.NumBdy
	}
	// Chain the category blocks into one numbering
	ot.Edge = ot.Edge.Add(ot.Interface.Last())
	ot.Vertex = ot.Vertex.Add(ot.Edge.Last())
	ot.BdyEdge = ot.BdyEdge.Add(ot.Vertex.Last())
	ot.BdyVertex = ot.BdyVertex.Add(ot.BdyEdge.Last())
	return
}

// DimK is the total patch local coefficient count
func (ot *OffsetTables) DimK() int { return ot.PatchLocal.Last() }

// DimG1Dofs is the number of free rows, interfaces then edges then vertices
func (ot *OffsetTables) DimG1Dofs() int { return ot.Vertex.Last() }

// DimG1Bdy is the number of prescribed rows
func (ot *OffsetTables) DimG1Bdy() int {
	return ot.BdyVertex.Last() - ot.DimG1Dofs()
}

// Total is the full row count of the transformation
func (ot *OffsetTables) Total() int {
	return ot.DimG1Dofs() + ot.DimG1Bdy() + ot.DimK()
}

// InteriorRow maps a patch local coefficient to its row in the trailing
// block
func (ot *OffsetTables) InteriorRow(np, loc int) int {
	return ot.DimG1Dofs() + ot.DimG1Bdy() + ot.PatchLocal[np] + loc
}

// PatchColumn maps a patch local coefficient to its column
func (ot *OffsetTables) PatchColumn(np, loc int) (col int, err error) {
	if np < 0 || np >= len(ot.mp.Patches) {
		return 0, &IndexRangeError{Kind: "patch", ID: np, Index: np,
			Limit: len(ot.mp.Patches)}
	}
	if loc < 0 || loc >= ot.PatchLocal[np+1]-ot.PatchLocal[np] {
		return 0, &IndexRangeError{Kind: "function", ID: np, Index: loc,
			Limit: ot.PatchLocal[np+1] - ot.PatchLocal[np]}
	}
	return ot.PatchLocal[np] + loc, nil
}

// InterfaceColumn maps a patch local coefficient to its column for interface
// function insertion
func (ot *OffsetTables) InterfaceColumn(np, loc int) (col int, err error) {
	if np < 0 || np >= len(ot.mp.Patches) {
		return 0, &IndexRangeError{Kind: "patch", ID: np, Index: np,
			Limit: len(ot.mp.Patches)}
	}
	if loc < 0 || loc >= ot.InterfaceLocal[np+1]-ot.InterfaceLocal[np] {
		return 0, &IndexRangeError{Kind: "function", ID: np, Index: loc,
			Limit: ot.InterfaceLocal[np+1] - ot.InterfaceLocal[np]}
	}
	return ot.InterfaceLocal[np] + loc, nil
}

// InterfaceRow maps interface function bfID to its global row. Functions are
// numbered plus space first, then minus space. Under the two patch Dirichlet
// rules the first and last function of each space go to the boundary vertex
// block of the corresponding end vertex, as does the second function next to
// a kink, and the remaining rows close the gaps
func (ot *OffsetTables) InterfaceRow(iID, bfID int) (row int, err error) {
	if iID < 0 || iID >= len(ot.mp.Interfaces) {
		return 0, &IndexRangeError{Kind: "interface", ID: iID, Index: iID,
			Limit: len(ot.mp.Interfaces)}
	}
	var (
		it      = ot.topo.Interfaces[iID]
		plus    = it.SizePlus
		iface   = ot.mp.Interfaces[iID]
		twoDiri = ot.topo.Policy.TwoPatch && !ot.topo.Policy.Neumann
	)
	// Without redirection the functions arrive pre trimmed, so the block
	// size bounds them. With redirection the full plus and minus spaces
	// arrive and the endpoint functions leave the block
	limit := it.NumFunctions
	if twoDiri {
		limit = it.SizePlus + it.SizeMinus
	}
	if bfID < 0 || bfID >= limit {
		return 0, &IndexRangeError{Kind: "interface", ID: iID, Index: bfID,
			Limit: limit}
	}
	if !twoDiri {
		return ot.Interface[iID] + bfID, nil
	}
	switch {
	case bfID == 0:
		return ot.BdyVertex[iface.VStart], nil
	case bfID == plus:
		return ot.BdyVertex[iface.VStart] + 1, nil
	case bfID == plus-1:
		return ot.BdyVertex[iface.VEnd], nil
	case bfID == 2*plus-2:
		return ot.BdyVertex[iface.VEnd] + 1, nil
	case bfID == 1 && it.Kink[0]:
		return ot.BdyVertex[iface.VStart] + 2, nil
	case bfID == plus-2 && it.Kink[1]:
		return ot.BdyVertex[iface.VEnd] + 2, nil
	}
	var shift int
	hi := plus - 1
	if it.Kink[1] {
		hi = plus - 2
	}
	if bfID < hi {
		shift = 1
		if it.Kink[0] {
			shift = 2
		}
	} else {
		shift = 3
		if it.Kink[0] {
			shift++
		}
		if it.Kink[1] {
			shift++
		}
	}
	return ot.Interface[iID] + bfID - shift, nil
}

// BoundaryRow maps boundary function bfID to its global row, prescribed
// functions first in the insertion order, then the free ones
func (ot *OffsetTables) BoundaryRow(bID, bfID int) (row int, err error) {
	if bID < 0 || bID >= len(ot.mp.Boundaries) {
		return 0, &IndexRangeError{Kind: "boundary", ID: bID, Index: bID,
			Limit: len(ot.mp.Boundaries)}
	}
	var (
		bt     = ot.topo.Boundaries[bID]
		policy = ot.topo.Policy
		limit  = bt.NumBdy + bt.NumEdge
	)
	if bfID < 0 || bfID >= limit {
		return 0, &IndexRangeError{Kind: "boundary", ID: bID, Index: bfID,
			Limit: limit}
	}
	switch {
	case policy.Neumann:
		return ot.BdyEdge[bID] + bfID, nil
	case policy.TwoPatch:
		if bfID < bt.SizePlus {
			return ot.BdyEdge[bID] + bfID, nil
		}
		return ot.Edge[bID] + bfID - bt.SizePlus, nil
	default:
		if bfID < bt.SizePlus-6 {
			return ot.BdyEdge[bID] + bfID, nil
		}
		return ot.Edge[bID] + bfID - bt.SizePlus + 6, nil
	}
}

// VertexRow maps vertex function bfID to its global row. Interior vertices
// keep every function free, the others split at the vertex free count
func (ot *OffsetTables) VertexRow(vID, bfID int) (row int, err error) {
	if vID < 0 || vID >= len(ot.mp.Vertices) {
		return 0, &IndexRangeError{Kind: "vertex", ID: vID, Index: vID,
			Limit: len(ot.mp.Vertices)}
	}
	var (
		vt    = ot.topo.Vertices[vID]
		limit = vt.NumDofs + vt.NumBdy
	)
	if bfID < 0 || bfID >= limit {
		return 0, &IndexRangeError{Kind: "vertex", ID: vID, Index: bfID,
			Limit: limit}
	}
	if vt.Kind == VertexInterior || bfID < vt.NumDofs {
		return ot.Vertex[vID] + bfID, nil
	}
	return ot.BdyVertex[vID] + bfID - vt.NumDofs, nil
}
