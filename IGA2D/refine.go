package IGA2D

import (
	"github.com/notargets/goiga/spline1D"
	"github.com/notargets/goiga/utils"
)

// RefineUniform bisects every knot span of both directions, keeping the
// inner knot multiplicity so the refined basis stays in the regularity
// class of the coarse one. The returned transfer carries coarse local
// coefficients into the refined basis, row index ordering matching the
// refined lexicographic numbering
func (p *Patch) RefineUniform() (R *Patch, T utils.Matrix) {
	var (
		uF, tU = p.Basis.U.RefineUniformMult(refineMult(p.Basis.U))
		vF, tV = p.Basis.V.RefineUniformMult(refineMult(p.Basis.V))
	)
	T = tV.Kron(tU)
	R = NewPatch(NewTensorBasis(uF, vF), T.Mul(p.Coefs))
	return
}

func refineMult(kv spline1D.KnotVector) int {
	return maxInt(1, kv.InnerMultiplicity())
}

// RefineUniform refines every patch and recomputes the topology. The per
// patch transfers map coarse solution coefficients into the refined spaces,
// so a solve on the refined domain can start from the transported solution
func (mp *MultiPatch) RefineUniform() (R *MultiPatch, T []utils.Matrix, err error) {
	var (
		patches = make([]*Patch, len(mp.Patches))
	)
	T = make([]utils.Matrix, len(mp.Patches))
	for np, p := range mp.Patches {
		patches[np], T[np] = p.RefineUniform()
	}
	R, err = NewMultiPatch(patches...)
	if err != nil {
		return nil, nil, err
	}
	return
}
