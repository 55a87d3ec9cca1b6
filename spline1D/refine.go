package spline1D

import (
	"fmt"

	"github.com/notargets/goiga/utils"
)

// InsertKnot inserts the knot u once, returning the refined space and
// the transfer matrix carrying coefficients from the coarse space into
// the refined one. Both spaces contain the same splines, so refined
// coefficients reproduce the coarse spline exactly.
func (kv KnotVector) InsertKnot(u float64) (R KnotVector, T utils.Matrix) {
	var (
		p = kv.P
		n = kv.NumBasis()
		k = kv.Span(u)
	)
	if u <= kv.T[p] || u >= kv.T[len(kv.T)-p-1] {
		panic(fmt.Errorf("knot %v outside the open parametric interval", u))
	}
	tNew := make([]float64, len(kv.T)+1)
	copy(tNew, kv.T[:k+1])
	tNew[k+1] = u
	copy(tNew[k+2:], kv.T[k+1:])
	R = KnotVector{T: tNew, P: p}
	T = utils.NewMatrix(n+1, n)
	for i := 0; i <= n; i++ {
		switch {
		case i <= k-p:
			T.DataP[i*n+i] = 1
		case i >= k+1:
			T.DataP[i*n+i-1] = 1
		default:
			alpha := (u - kv.T[i]) / (kv.T[i+p] - kv.T[i])
			T.DataP[i*n+i] = alpha
			T.DataP[i*n+i-1] = 1 - alpha
		}
	}
	return
}

// RefineUniform bisects every nonzero knot span, returning the refined
// space and the composed coefficient transfer.
func (kv KnotVector) RefineUniform() (R KnotVector, T utils.Matrix) {
	return kv.RefineUniformMult(1)
}

// RefineUniformMult bisects every nonzero knot span, inserting each
// midpoint mult times. Matching mult to the inner knot multiplicity keeps
// the refined space in the same regularity class as the coarse one.
func (kv KnotVector) RefineUniformMult(mult int) (R KnotVector, T utils.Matrix) {
	var (
		breaks = kv.Breaks()
	)
	if mult < 1 || mult > kv.P {
		panic(fmt.Errorf("insertion multiplicity %d outside [1,%d]", mult, kv.P))
	}
	R = kv
	T = utils.NewDiagMatrix(kv.NumBasis(), nil, 1)
	for e := 0; e < len(breaks)-1; e++ {
		mid := 0.5 * (breaks[e] + breaks[e+1])
		for m := 0; m < mult; m++ {
			var Te utils.Matrix
			R, Te = R.InsertKnot(mid)
			T = Te.Mul(T)
		}
	}
	return
}
