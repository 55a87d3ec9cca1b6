package IGA2D

// VertexKind classifies a vertex by how the patches around it connect
type VertexKind int8

const (
	VertexBoundary          VertexKind = -1 // single patch corner on the domain boundary
	VertexInterior          VertexKind = 0  // all adjoining patches pairwise interfaced
	VertexInterfaceBoundary VertexKind = 1  // interface endpoint on the domain boundary
)

func (k VertexKind) String() string {
	switch k {
	case VertexBoundary:
		return "boundary"
	case VertexInterior:
		return "interior"
	case VertexInterfaceBoundary:
		return "interface-boundary"
	}
	return "unknown"
}

// KinkTol is the threshold on the squared transversal determinant above
// which an interface endpoint counts as a boundary kink
const KinkTol = 1.e-25

// TopologyPolicy selects the counting rules. TwoPatch uses the refined
// two patch rules with kink detection, otherwise the general multi patch
// rules with interface regularity fixed to one. Neumann switches the
// boundary split so that both trace rings are prescribed. InnerKnotMulti
// mirrors the option that raises interior knot multiplicity for the
// interface spaces
type TopologyPolicy struct {
	TwoPatch       bool
	Neumann        bool
	InnerKnotMulti int
}

// InterfaceTopo carries the per interface counts. NumFunctions is the number
// of rows the interface keeps in the interface block after the endpoint
// functions move to their vertices
type InterfaceTopo struct {
	P, R, N      int
	SizePlus     int
	SizeMinus    int
	NumFunctions int
	Kink         [2]bool // kink at VStart, VEnd
}

// BoundaryTopo carries the per boundary side counts. SizePlus is the split
// point between prescribed and free functions in the insertion order
type BoundaryTopo struct {
	SizePlus int
	NumBdy   int
	NumEdge  int
}

// VertexTopo carries the per vertex kind and counts
type VertexTopo struct {
	Kind    VertexKind
	NumDofs int
	NumBdy  int
}

// Topology is the classification of a multi patch domain under a policy
type Topology struct {
	Policy     TopologyPolicy
	Interfaces []InterfaceTopo
	Boundaries []BoundaryTopo
	Vertices   []VertexTopo
}

// ClassifyTopology computes the entity classification and per entity
// function counts for the given domain and policy
func ClassifyTopology(mp *MultiPatch, policy TopologyPolicy) (topo *Topology, err error) {
	topo = &Topology{
		Policy:     policy,
		Interfaces: make([]InterfaceTopo, len(mp.Interfaces)),
		Boundaries: make([]BoundaryTopo, len(mp.Boundaries)),
		Vertices:   make([]VertexTopo, len(mp.Vertices)),
	}
	if policy.TwoPatch {
		err = classifyTwoPatch(mp, topo)
	} else {
		err = classifyGeneral(mp, topo)
	}
	if err != nil {
		return nil, err
	}
	return
}

func classifyTwoPatch(mp *MultiPatch, topo *Topology) error {
	var (
		policy = topo.Policy
	)
	for i, iface := range mp.Interfaces {
		var (
			kvA  = mp.SideKnots(iface.A)
			kvB  = mp.SideKnots(iface.B)
			p    = minInt(kvA.P, kvB.P)
			n    = minInt(kvA.NumElements(), kvB.NumElements())
			mult = maxInt(kvA.InnerMultiplicity(), kvB.InnerMultiplicity())
			r    = minInt(p-mult, p-2)
		)
		it := &topo.Interfaces[i]
		it.P, it.R, it.N = p, r, n
		it.Kink[0] = interfaceKink(mp, iface, iface.VStart)
		it.Kink[1] = interfaceKink(mp, iface, iface.VEnd)

		numIntBdy := 4
		if policy.Neumann {
			numIntBdy = 8
		}
		if it.Kink[0] {
			numIntBdy++
		}
		if it.Kink[1] {
			numIntBdy++
		}
		numInnerKnot := 0
		if policy.InnerKnotMulti > 0 && p-1-r == 1 && n > 1 {
			numInnerKnot = 3
		}
		it.SizePlus = (p-r-1)*(n-1) + p + 1 + numInnerKnot
		it.SizeMinus = it.SizePlus - 1
		it.NumFunctions = 2*(p-r-1)*(n-1) + 2*p + 1 - numIntBdy + 2*numInnerKnot
		if it.NumFunctions < 0 {
			return configErrorf("classify",
				"interface %d has %d functions, degree %d too low for the"+
					" two patch rules", i, it.NumFunctions, p)
		}
	}
	for i, b := range mp.Boundaries {
		size := mp.SideBasisSize(b.PatchSide)
		if size < 4 {
			return configErrorf("classify",
				"boundary %d has a side basis of size %d, at least 4 needed",
				i, size)
		}
		bt := &topo.Boundaries[i]
		bt.SizePlus = size - 4
		if policy.Neumann {
			bt.NumBdy = 2*size - 8
			bt.NumEdge = 0
		} else {
			bt.NumBdy = size - 4
			bt.NumEdge = size - 4
		}
	}
	for i, v := range mp.Vertices {
		vt := &topo.Vertices[i]
		if len(v.Corners) == 1 {
			vt.Kind = VertexBoundary
			if policy.Neumann {
				vt.NumDofs, vt.NumBdy = 0, 4
			} else {
				vt.NumDofs, vt.NumBdy = 1, 3
			}
			continue
		}
		patches := v.Patches()
		if mp.PairwiseInterfaces(patches) == len(v.Corners) {
			vt.Kind = VertexInterior
			continue
		}
		vt.Kind = VertexInterfaceBoundary
		if policy.Neumann {
			vt.NumDofs, vt.NumBdy = 0, 4
		} else {
			vt.NumDofs, vt.NumBdy = 0, 2
			if vertexHasKink(mp, topo, i) {
				vt.NumBdy++
			}
		}
	}
	return nil
}

func classifyGeneral(mp *MultiPatch, topo *Topology) error {
	var (
		policy = topo.Policy
	)
	for i, iface := range mp.Interfaces {
		var (
			kv = mp.SideKnots(iface.A)
			p  = kv.P
			r  = 1 // fixed interface regularity in the general rules
			n  = kv.NumElements()
		)
		it := &topo.Interfaces[i]
		it.P, it.R, it.N = p, r, n
		it.SizePlus = (p-r-1)*(n-1) + p + 1
		it.SizeMinus = it.SizePlus - 1
		it.NumFunctions = 2*(p-r-1)*(n-1) + 2*p - 9
		if it.NumFunctions < 0 {
			return configErrorf("classify",
				"interface %d has %d functions, degree %d too low for the"+
					" general rules", i, it.NumFunctions, p)
		}
	}
	for i, b := range mp.Boundaries {
		var (
			kv = mp.SideKnots(b.PatchSide)
			p  = kv.P
			r  = 1
			n  = kv.NumElements()
		)
		bt := &topo.Boundaries[i]
		bt.SizePlus = (p-r-1)*(n-1) + p + 1
		if policy.Neumann {
			bt.NumBdy = 2*(p-r-1)*(n-1) + 2*p + 1 - 10
			bt.NumEdge = 0
		} else {
			bt.NumBdy = bt.SizePlus - 6
			bt.NumEdge = (p-r-1)*(n-1) + p - 4
		}
		if bt.NumBdy < 0 || bt.NumEdge < 0 {
			return configErrorf("classify",
				"boundary %d has counts %d/%d, degree %d too low for the"+
					" general rules", i, bt.NumBdy, bt.NumEdge, p)
		}
	}
	for i, v := range mp.Vertices {
		vt := &topo.Vertices[i]
		if len(v.Corners) == 1 {
			vt.Kind = VertexBoundary
			vt.NumDofs, vt.NumBdy = 1, 6
			continue
		}
		patches := v.Patches()
		if mp.PairwiseInterfaces(patches) == len(v.Corners) {
			vt.Kind = VertexInterior
			vt.NumDofs, vt.NumBdy = 6, 0
			continue
		}
		vt.Kind = VertexInterfaceBoundary
		vt.NumDofs, vt.NumBdy = 3, 6
	}
	return nil
}

// interfaceKink evaluates the geometry Jacobians of both patches at the
// given interface endpoint and tests whether their transversal tangents are
// linearly independent
func interfaceKink(mp *MultiPatch, iface Interface, vID int) bool {
	var (
		ax, ay = transversalTangent(mp, iface.A, vID)
		bx, by = transversalTangent(mp, iface.B, vID)
		det    = ax*by - ay*bx
	)
	return det*det > KinkTol
}

func transversalTangent(mp *MultiPatch, ps PatchSide, vID int) (tx, ty float64) {
	var (
		corner = -1
		tDir   = 1 - ps.Side.Dir()
	)
	for c := 0; c < 4; c++ {
		if mp.CornerVertex[ps.Patch][c] == vID {
			corner = c
			break
		}
	}
	if corner < 0 {
		panic("vertex does not touch the patch")
	}
	u, v := CornerParam(corner)
	J := mp.Patches[ps.Patch].Jacobian(u, v)
	return J.At(0, tDir), J.At(1, tDir)
}

// vertexHasKink reports whether any interface ending at the vertex was
// classified with a kink at that end
func vertexHasKink(mp *MultiPatch, topo *Topology, vID int) bool {
	for i, iface := range mp.Interfaces {
		if iface.VStart == vID && topo.Interfaces[i].Kink[0] {
			return true
		}
		if iface.VEnd == vID && topo.Interfaces[i].Kink[1] {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
