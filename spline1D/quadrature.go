package spline1D

import (
	"math"

	"github.com/notargets/goiga/utils"

	"gonum.org/v1/gonum/mat"
)

// JacobiGQ computes the N+1 point Gauss quadrature rule for the Jacobi
// weight (1-x)^alpha (1+x)^beta on [-1,1] via the eigenvalues of the
// symmetric tridiagonal recurrence matrix.
func JacobiGQ(alpha, beta float64, N int) (X, W utils.Vector) {
	var (
		x, w       []float64
		fac        float64
		h1, d0, d1 []float64
		VVr        *mat.Dense
	)
	if N == 0 {
		x = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w = []float64{2.}
		return utils.NewVector(len(x), x), utils.NewVector(len(w), w)
	}

	h1 = make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// main diagonal: diag(-1/2*(alpha^2-beta^2)./(h1+2)./h1)
	d0 = make([]float64, N+1)
	fac = -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2.))
	}
	// Handle division by zero
	eps := 1.e-16
	if alpha+beta < 10*eps {
		d0[0] = 0.
	}

	// 1st upper diagonal: diag(2./(h1(1:N)+2).*sqrt((1:N).*((1:N)+alpha+beta) .* ((1:N)+alpha).*((1:N)+beta)./(h1(1:N)+1)./(h1(1:N)+3)),1)
	var ip1 float64
	d1 = make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 = float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}

	JJ := NewSymTriDiagonal(d0, d1)

	var eig mat.EigenSym
	ok := eig.Factorize(JJ, true)
	if !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(x)
	X = utils.NewVector(N+1, x)

	VVr = mat.NewDense(len(x), len(x), nil)
	eig.VectorsTo(VVr)
	W = utils.NewVector(len(x), VVr.RawRowView(0)).POW(2).Scale(gamma0(alpha, beta))
	return X, W
}

// GaussLegendre returns the n point Gauss-Legendre rule on [-1,1].
func GaussLegendre(n int) (X, W utils.Vector) {
	return JacobiGQ(0, 0, n-1)
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func NewSymTriDiagonal(d0, d1 []float64) (Tri *mat.SymDense) {
	dd := make([]float64, len(d0)*len(d0))
	var p1, p2 int
	for j := 0; j < len(d0); j++ {
		for i := 0; i < len(d0); i++ {
			if i == j {
				dd[i+j*len(d0)] = d0[p1]
				p1++
				if i != len(d0)-1 {
					dd[+1+i+j*len(d0)] = d1[p2]
					p2++
				}
			}
		}
	}
	Tri = mat.NewSymDense(len(d0), dd)
	return
}

/*
ElementQuadrature carries a Gauss-Legendre rule mapped onto each
nonzero knot span of a spline space. Points and weights are stored per
element, ready for assembly loops over the active basis functions.
*/
type ElementQuadrature struct {
	Points  []utils.Vector
	Weights []utils.Vector
}

// NewElementQuadrature maps an nPoints Gauss-Legendre rule onto every
// nonzero span of the knot vector.
func NewElementQuadrature(kv KnotVector, nPoints int) (eq ElementQuadrature) {
	var (
		breaks = kv.Breaks()
		xi, wi = GaussLegendre(nPoints)
	)
	eq.Points = make([]utils.Vector, len(breaks)-1)
	eq.Weights = make([]utils.Vector, len(breaks)-1)
	for e := 0; e < len(breaks)-1; e++ {
		var (
			a, b = breaks[e], breaks[e+1]
			jac  = 0.5 * (b - a)
		)
		eq.Points[e] = utils.NewVector(nPoints)
		eq.Weights[e] = utils.NewVector(nPoints)
		for q := 0; q < nPoints; q++ {
			eq.Points[e].DataP[q] = a + jac*(xi.DataP[q]+1.)
			eq.Weights[e].DataP[q] = jac * wi.DataP[q]
		}
	}
	return
}
