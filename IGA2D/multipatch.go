package IGA2D

import (
	"math"
	"strconv"

	"github.com/katalvlaran/lvlath/core"
	"github.com/notargets/goiga/spline1D"
	"github.com/notargets/goiga/types"
)

// Side numbers the four sides of a patch in parameter space
type Side uint8

const (
	South Side = iota // v = 0
	East              // u = 1
	North             // v = 1
	West              // u = 0
)

func (s Side) String() string {
	switch s {
	case South:
		return "south"
	case East:
		return "east"
	case North:
		return "north"
	case West:
		return "west"
	}
	return "unknown"
}

// Dir returns the parameter direction the side runs along, 0 for u, 1 for v
func (s Side) Dir() int {
	if s == South || s == North {
		return 0
	}
	return 1
}

// Corners returns the side's local corner pair in edge parameter order
func (s Side) Corners() (c0, c1 int) {
	switch s {
	case South:
		return 0, 1
	case East:
		return 1, 3
	case North:
		return 2, 3
	case West:
		return 0, 2
	}
	panic("side out of range")
}

// IsLow reports whether the side sits at the low end of the transversal
// parameter direction
func (s Side) IsLow() bool {
	return s == South || s == West
}

// PatchSide identifies one side of one patch
type PatchSide struct {
	Patch int
	Side  Side
}

// Interface is a side shared by exactly two patches. VStart and VEnd are the
// global vertex IDs at the ends, in the edge parameter order of side A
type Interface struct {
	A, B         PatchSide
	VStart, VEnd int
}

// BoundarySide is a side owned by a single patch
type BoundarySide struct {
	PatchSide
	VStart, VEnd int
}

// PatchCorner identifies one corner of one patch
type PatchCorner struct {
	Patch, Corner int
}

// Vertex is an equivalence class of coincident patch corners
type Vertex struct {
	XY      [2]float64
	Corners []PatchCorner
}

// Patches returns the distinct patch indices meeting at the vertex
func (v Vertex) Patches() (patches []int) {
	for _, pc := range v.Corners {
		found := false
		for _, np := range patches {
			if np == pc.Patch {
				found = true
				break
			}
		}
		if !found {
			patches = append(patches, pc.Patch)
		}
	}
	return
}

// MultiPatch is a collection of patches with the connectivity computed from
// coincident corners and sides. Vertices, interfaces and boundaries are
// listed in first discovery order over patches, sides scanned south, east,
// north, west
type MultiPatch struct {
	Patches      []*Patch
	Vertices     []Vertex
	Interfaces   []Interface
	Boundaries   []BoundarySide
	CornerVertex [][4]int
	graph        *core.Graph
}

func NewMultiPatch(patches ...*Patch) (mp *MultiPatch, err error) {
	if len(patches) == 0 {
		return nil, configErrorf("topology", "no patches supplied")
	}
	mp = &MultiPatch{Patches: patches}
	err = mp.computeTopology()
	return
}

const cornerQuantum = 1.e-9

func cornerKey(x, y float64) [2]int64 {
	return [2]int64{
		int64(math.Round(x / cornerQuantum)),
		int64(math.Round(y / cornerQuantum)),
	}
}

func (mp *MultiPatch) computeTopology() error {
	var (
		seen = make(map[[2]int64]int)
	)
	mp.CornerVertex = make([][4]int, len(mp.Patches))
	for np, p := range mp.Patches {
		for c := 0; c < 4; c++ {
			x, y := p.Corner(c)
			key := cornerKey(x, y)
			vid, ok := seen[key]
			if !ok {
				vid = len(mp.Vertices)
				seen[key] = vid
				mp.Vertices = append(mp.Vertices, Vertex{XY: [2]float64{x, y}})
			}
			mp.Vertices[vid].Corners =
				append(mp.Vertices[vid].Corners, PatchCorner{np, c})
			mp.CornerVertex[np][c] = vid
		}
	}
	// Match sides through their vertex pairs. The directed segment keeps the
	// side's parameter direction, its undirected key joins the two copies
	type sideRef struct {
		ps  PatchSide
		seg types.EdgeInt
	}
	var (
		bySeg = make(map[types.EdgeKey][]sideRef)
		order []types.EdgeKey
	)
	for np := range mp.Patches {
		for s := South; s <= West; s++ {
			c0, c1 := s.Corners()
			v0 := mp.CornerVertex[np][c0]
			v1 := mp.CornerVertex[np][c1]
			if v0 == v1 {
				return configErrorf("topology",
					"degenerate %s side of patch %d", s, np)
			}
			seg := types.NewEdgeInt([2]int{v0, v1})
			key := seg.GetKey()
			if _, ok := bySeg[key]; !ok {
				order = append(order, key)
			}
			bySeg[key] = append(bySeg[key], sideRef{PatchSide{np, s}, seg})
		}
	}
	mp.graph = core.NewGraph()
	for np := range mp.Patches {
		if err := mp.graph.AddVertex(strconv.Itoa(np)); err != nil {
			return err
		}
	}
	for _, key := range order {
		refs := bySeg[key]
		switch len(refs) {
		case 1:
			r := refs[0]
			verts := r.seg.GetVertices()
			mp.Boundaries = append(mp.Boundaries,
				BoundarySide{r.ps, verts[0], verts[1]})
		case 2:
			a, b := refs[0], refs[1]
			// Opposite parameter directions pack to different segments
			if a.seg != b.seg {
				return configErrorf("topology",
					"interface between patch %d and %d has opposite"+
						" parameter directions", a.ps.Patch, b.ps.Patch)
			}
			av := a.seg.GetVertices()
			mp.Interfaces = append(mp.Interfaces,
				Interface{A: a.ps, B: b.ps, VStart: av[0], VEnd: av[1]})
			pa, pb := strconv.Itoa(a.ps.Patch), strconv.Itoa(b.ps.Patch)
			if !mp.graph.HasEdge(pa, pb) {
				if _, err := mp.graph.AddEdge(pa, pb, 0); err != nil {
					return err
				}
			}
		default:
			return configErrorf("topology",
				"%d patches share one edge", len(refs))
		}
	}
	return nil
}

// PairwiseInterfaces counts the interfaces connecting the given patches to
// each other
func (mp *MultiPatch) PairwiseInterfaces(patches []int) (count int) {
	for i := 0; i < len(patches); i++ {
		for j := i + 1; j < len(patches); j++ {
			if mp.graph.HasEdge(strconv.Itoa(patches[i]),
				strconv.Itoa(patches[j])) {
				count++
			}
		}
	}
	return
}

// SideKnots returns the univariate knot vector along the given side
func (mp *MultiPatch) SideKnots(ps PatchSide) spline1D.KnotVector {
	basis := mp.Patches[ps.Patch].Basis
	if ps.Side.Dir() == 0 {
		return basis.U
	}
	return basis.V
}

// SideBasisSize returns the 1D basis dimension along the given side
func (mp *MultiPatch) SideBasisSize(ps PatchSide) int {
	return mp.SideKnots(ps).NumBasis()
}

// NewTwoPatchSquare builds two unit squares glued along the x=1 edge
func NewTwoPatchSquare(degree, nElements, regularity int) (*MultiPatch, error) {
	var (
		left  = NewBSplineSquare(degree, nElements, regularity)
		right = NewBSplineRectangle(degree, nElements, regularity, 1, 0, 1, 1)
	)
	return NewMultiPatch(left, right)
}

// NewSquareGrid tiles nx by ny unit squares, patches numbered row major from
// the lower left
func NewSquareGrid(degree, nElements, regularity, nx, ny int) (*MultiPatch, error) {
	var (
		patches []*Patch
	)
	if nx < 1 || ny < 1 {
		return nil, configErrorf("topology", "grid %dx%d is empty", nx, ny)
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			patches = append(patches, NewBSplineRectangle(
				degree, nElements, regularity,
				float64(i), float64(j), 1, 1))
		}
	}
	return NewMultiPatch(patches...)
}
