package utils

import (
	"fmt"
	"math"
)

// SolveCGDiagonal solves A x = b for a symmetric positive definite sparse
// A using the conjugate gradient method with Jacobi (diagonal)
// preconditioning. Zero diagonal entries fall back to a unit
// preconditioner so rows untouched by the operator do not poison the
// iteration. A trailing argument overrides the default relative
// residual tolerance of 1.e-12.
func SolveCGDiagonal(A CSR, b Vector, tolO ...float64) (x Vector, iterations int, residual float64, err error) {
	var (
		nr, nc  = A.Dims()
		n       = nc
		tol     = 1.e-12
		maxIter = 2 * n
	)
	if nr != nc {
		err = fmt.Errorf("matrix must be square: nr, nc = %v, %v\n", nr, nc)
		return
	}
	if b.Len() != n {
		err = fmt.Errorf("dimension mismatch: n, len(b) = %v, %v\n", n, b.Len())
		return
	}
	if len(tolO) != 0 {
		tol = tolO[0]
	}
	diag := A.Diagonal()
	mInv := NewVector(n)
	for i, val := range diag.DataP {
		if val != 0 {
			mInv.DataP[i] = 1. / val
		} else {
			mInv.DataP[i] = 1.
		}
	}
	x = NewVector(n)
	bNorm := b.Norm()
	if bNorm == 0 {
		return // b is zero, x = 0 is exact
	}
	r := b.Copy()
	z := r.Copy().ElMul(mInv)
	p := z.Copy()
	rz := r.Dot(z)
	residual = 1.
	for iterations = 1; iterations <= maxIter; iterations++ {
		ap := A.MulVec(p)
		pap := p.Dot(ap)
		if pap <= 0 || math.IsNaN(pap) {
			err = fmt.Errorf("matrix is not positive definite: p.A.p = %v at iteration %d", pap, iterations)
			return
		}
		alpha := rz / pap
		for i := range x.DataP {
			x.DataP[i] += alpha * p.DataP[i]
			r.DataP[i] -= alpha * ap.DataP[i]
		}
		residual = r.Norm() / bNorm
		if residual <= tol {
			return
		}
		for i := range z.DataP {
			z.DataP[i] = r.DataP[i] * mInv.DataP[i]
		}
		rzNew := r.Dot(z)
		beta := rzNew / rz
		for i := range p.DataP {
			p.DataP[i] = z.DataP[i] + beta*p.DataP[i]
		}
		rz = rzNew
	}
	iterations = maxIter
	err = fmt.Errorf("conjugate gradient stalled after %d iterations, residual = %v", maxIter, residual)
	return
}
