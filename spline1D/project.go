package spline1D

import (
	"github.com/notargets/goiga/utils"
)

// MassMatrix assembles the Gram matrix of the basis with an exact
// Gauss-Legendre rule per element.
func (kv KnotVector) MassMatrix() (M utils.Matrix) {
	var (
		p  = kv.P
		n  = kv.NumBasis()
		eq = NewElementQuadrature(kv, p+1)
	)
	M = utils.NewMatrix(n, n)
	for e := range eq.Points {
		for q := 0; q < eq.Points[e].Len(); q++ {
			var (
				u    = eq.Points[e].DataP[q]
				w    = eq.Weights[e].DataP[q]
				span = kv.Span(u)
				N    = kv.BasisFuns(span, u)
			)
			first := span - p
			for i := 0; i <= p; i++ {
				for j := 0; j <= p; j++ {
					M.DataP[(first+i)*n+first+j] += w * N[i] * N[j]
				}
			}
		}
	}
	return
}

// ProjectL2 computes the coefficients of the L2 projection of f onto
// the spline space. The projection is exact whenever f lies in the
// space, which the consolidation traces rely on.
func (kv KnotVector) ProjectL2(f func(float64) float64) (coefs utils.Vector, err error) {
	var (
		p  = kv.P
		n  = kv.NumBasis()
		eq = NewElementQuadrature(kv, p+2)
		M  = kv.MassMatrix()
		b  = utils.NewVector(n)
	)
	for e := range eq.Points {
		for q := 0; q < eq.Points[e].Len(); q++ {
			var (
				u    = eq.Points[e].DataP[q]
				w    = eq.Weights[e].DataP[q]
				span = kv.Span(u)
				N    = kv.BasisFuns(span, u)
				fVal = f(u)
			)
			first := span - p
			for i := 0; i <= p; i++ {
				b.DataP[first+i] += w * N[i] * fVal
			}
		}
	}
	// The mass matrix is symmetric positive definite
	coefs, err = M.CholeskySolveVec(b)
	return
}
