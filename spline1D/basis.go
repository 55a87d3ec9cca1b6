package spline1D

import (
	"github.com/notargets/goiga/utils"
)

// BasisFuns evaluates the P+1 basis functions that are nonzero on the
// given knot span, following algorithm A2.2 of Piegl & Tiller. Entry j
// of the result is the value of basis function span-P+j at u.
func (kv KnotVector) BasisFuns(span int, u float64) (N []float64) {
	var (
		p     = kv.P
		T     = kv.T
		left  = make([]float64, p+1)
		right = make([]float64, p+1)
	)
	N = make([]float64, p+1)
	N[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - T[span+1-j]
		right[j] = T[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			temp := N[r] / (right[r+1] + left[j-r])
			N[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		N[j] = saved
	}
	return
}

// DersBasisFuns evaluates the nonzero basis functions and their first
// nDeriv derivatives on the given knot span, following algorithm A2.3
// of Piegl & Tiller. Row k of the result holds the kth derivative of
// the P+1 active functions, row 0 the values themselves.
func (kv KnotVector) DersBasisFuns(span int, u float64, nDeriv int) (Ders utils.Matrix) {
	var (
		p     = kv.P
		T     = kv.T
		left  = make([]float64, p+1)
		right = make([]float64, p+1)
		ndu   = make([][]float64, p+1)
	)
	for i := range ndu {
		ndu[i] = make([]float64, p+1)
	}
	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - T[span+1-j]
		right[j] = T[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}
	Ders = utils.NewMatrix(nDeriv+1, p+1)
	for j := 0; j <= p; j++ {
		Ders.Set(0, j, ndu[j][p])
	}
	// Remaining rows hold derivative orders, built from the stored
	// knot differences with the alternating accumulators a[0], a[1]
	a := [2][]float64{make([]float64, p+1), make([]float64, p+1)}
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		for k := 1; k <= nDeriv; k++ {
			var (
				d      float64
				rk, pk = r - k, p - k
				j1, j2 int
			)
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}
			if r-1 <= pk {
				j2 = k - 1
			} else {
				j2 = p - r
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			Ders.Set(k, r, d)
			s1, s2 = s2, s1
		}
	}
	acc := p
	for k := 1; k <= nDeriv; k++ {
		for j := 0; j <= p; j++ {
			Ders.Set(k, j, Ders.At(k, j)*float64(acc))
		}
		acc *= p - k
	}
	return
}

// EvalBasis returns the index of the first active basis function at u
// together with the values of the P+1 active functions.
func (kv KnotVector) EvalBasis(u float64) (first int, N []float64) {
	span := kv.Span(u)
	first = span - kv.P
	N = kv.BasisFuns(span, u)
	return
}

// Eval evaluates the spline with the given coefficients at u.
func (kv KnotVector) Eval(coefs utils.Vector, u float64) (val float64) {
	first, N := kv.EvalBasis(u)
	for j, nj := range N {
		val += coefs.DataP[first+j] * nj
	}
	return
}

// EvalDeriv evaluates the derivative of order k of the spline with the
// given coefficients at u.
func (kv KnotVector) EvalDeriv(coefs utils.Vector, u float64, k int) (val float64) {
	span := kv.Span(u)
	first := span - kv.P
	ders := kv.DersBasisFuns(span, u, k)
	for j := 0; j <= kv.P; j++ {
		val += coefs.DataP[first+j] * ders.At(k, j)
	}
	return
}
