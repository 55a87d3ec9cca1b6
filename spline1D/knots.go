package spline1D

import (
	"fmt"

	"github.com/notargets/goiga/utils"
)

/*
KnotVector holds a clamped (open) knot vector for a B-spline space of
degree P. The first and last knots carry multiplicity P+1 so the basis
interpolates the interval ends. Interior knot multiplicity controls the
smoothness of the space across element boundaries.
*/
type KnotVector struct {
	T []float64
	P int
}

// NewUniformKnots builds a clamped knot vector on [0,1] with
// numElements uniform elements and maximal smoothness at the interior
// breakpoints.
func NewUniformKnots(p, numElements int) (kv KnotVector) {
	return NewUniformKnotsRegularity(p, numElements, p-1)
}

// NewUniformKnotsRegularity builds a clamped knot vector on [0,1] with
// interior knots repeated to continuity class C^regularity.
func NewUniformKnotsRegularity(p, numElements, regularity int) (kv KnotVector) {
	var (
		mult = p - regularity
	)
	if p < 1 {
		panic(fmt.Errorf("degree must be at least 1, have %d", p))
	}
	if numElements < 1 {
		panic(fmt.Errorf("number of elements must be at least 1, have %d", numElements))
	}
	if regularity < 0 || regularity > p-1 {
		panic(fmt.Errorf("regularity must be within [0,%d], have %d", p-1, regularity))
	}
	T := make([]float64, 0, 2*(p+1)+(numElements-1)*mult)
	for i := 0; i <= p; i++ {
		T = append(T, 0)
	}
	for i := 1; i < numElements; i++ {
		val := float64(i) / float64(numElements)
		for j := 0; j < mult; j++ {
			T = append(T, val)
		}
	}
	for i := 0; i <= p; i++ {
		T = append(T, 1)
	}
	kv = KnotVector{T: T, P: p}
	return
}

// NumBasis is the dimension of the spline space.
func (kv KnotVector) NumBasis() int {
	return len(kv.T) - kv.P - 1
}

// NumElements counts the nonzero knot spans.
func (kv KnotVector) NumElements() int {
	return len(kv.Breaks()) - 1
}

// Breaks returns the unique knot values in ascending order.
func (kv KnotVector) Breaks() (breaks []float64) {
	breaks = append(breaks, kv.T[0])
	for _, t := range kv.T {
		if t > breaks[len(breaks)-1] {
			breaks = append(breaks, t)
		}
	}
	return
}

// InnerMultiplicity reports the multiplicity of the first interior
// knot, or 0 when the vector has no interior knots.
func (kv KnotVector) InnerMultiplicity() (mult int) {
	var (
		p    = kv.P
		last = len(kv.T) - p - 1
	)
	if p+1 >= last {
		return
	}
	val := kv.T[p+1]
	for i := p + 1; i < last; i++ {
		if kv.T[i] == val {
			mult++
		} else {
			break
		}
	}
	return
}

// Regularity is the continuity class of the space at interior
// breakpoints. A vector without interior knots is maximally smooth.
func (kv KnotVector) Regularity() int {
	mult := kv.InnerMultiplicity()
	if mult == 0 {
		return kv.P - 1
	}
	return kv.P - mult
}

// Span locates the knot span index containing u, following algorithm
// A2.1 of Piegl & Tiller. The returned index i satisfies
// T[i] <= u < T[i+1], with u at the right end mapped into the last
// nonzero span.
func (kv KnotVector) Span(u float64) (span int) {
	var (
		p = kv.P
		n = kv.NumBasis() - 1
		T = kv.T
	)
	if u >= T[n+1] {
		return n
	}
	if u <= T[p] {
		return p
	}
	low, high := p, n+1
	span = (low + high) / 2
	for u < T[span] || u >= T[span+1] {
		if u < T[span] {
			high = span
		} else {
			low = span
		}
		span = (low + high) / 2
	}
	return
}

// Greville returns the Greville abscissae of the space. Linear
// functions are reproduced exactly with these as coefficients, which
// anchors control nets for affine geometry at any degree.
func (kv KnotVector) Greville() (G utils.Vector) {
	var (
		p = kv.P
		n = kv.NumBasis()
	)
	G = utils.NewVector(n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 1; j <= p; j++ {
			sum += kv.T[i+j]
		}
		G.DataP[i] = sum / float64(p)
	}
	return
}

// Domain returns the parametric interval of the clamped space.
func (kv KnotVector) Domain() (a, b float64) {
	return kv.T[kv.P], kv.T[len(kv.T)-kv.P-1]
}
