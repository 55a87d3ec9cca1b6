package spline1D

import (
	"math"
	"testing"

	"github.com/notargets/goiga/utils"

	"github.com/stretchr/testify/assert"
)

func TestKnotVector(t *testing.T) {
	// Maximal smoothness, degree 2, four elements
	{
		kv := NewUniformKnots(2, 4)
		assert.Equal(t, []float64{0, 0, 0, 0.25, 0.5, 0.75, 1, 1, 1}, kv.T)
		assert.Equal(t, 6, kv.NumBasis())
		assert.Equal(t, 4, kv.NumElements())
		assert.Equal(t, 1, kv.InnerMultiplicity())
		assert.Equal(t, 1, kv.Regularity())
	}
	// Reduced regularity doubles interior knots
	{
		kv := NewUniformKnotsRegularity(3, 2, 1)
		assert.Equal(t, []float64{0, 0, 0, 0, 0.5, 0.5, 1, 1, 1, 1}, kv.T)
		assert.Equal(t, 6, kv.NumBasis())
		assert.Equal(t, 2, kv.InnerMultiplicity())
		assert.Equal(t, 1, kv.Regularity())
	}
	// Single element has no interior knots
	{
		kv := NewUniformKnots(3, 1)
		assert.Equal(t, 4, kv.NumBasis())
		assert.Equal(t, 0, kv.InnerMultiplicity())
		assert.Equal(t, 2, kv.Regularity())
		a, b := kv.Domain()
		assert.Equal(t, 0., a)
		assert.Equal(t, 1., b)
	}
	// Span lookup lands inside the right element
	{
		kv := NewUniformKnots(2, 4)
		assert.Equal(t, 2, kv.Span(0))
		assert.Equal(t, 2, kv.Span(0.1))
		assert.Equal(t, 4, kv.Span(0.5))
		assert.Equal(t, 5, kv.Span(0.999))
		assert.Equal(t, 5, kv.Span(1))
		for _, u := range []float64{0, 0.2, 0.25, 0.5, 0.77, 1} {
			span := kv.Span(u)
			assert.True(t, kv.T[span] <= u)
			if u < 1 {
				assert.True(t, u < kv.T[span+1])
			}
		}
	}
	// Greville abscissae reproduce linear functions
	{
		kv := NewUniformKnots(3, 3)
		G := kv.Greville()
		assert.Equal(t, kv.NumBasis(), G.Len())
		assert.True(t, near(G.DataP[0], 0))
		assert.True(t, near(G.DataP[G.Len()-1], 1))
		for _, u := range []float64{0, 0.15, 0.5, 0.85, 1} {
			assert.True(t, near(kv.Eval(G, u), u))
		}
	}
}

func TestKnotInsertion(t *testing.T) {
	// Single insertion preserves the spline
	{
		kv := NewUniformKnots(2, 1)
		R, T := kv.InsertKnot(0.5)
		assert.Equal(t, []float64{0, 0, 0, 0.5, 1, 1, 1}, R.T)
		assert.Equal(t, 4, R.NumBasis())
		nr, nc := T.Dims()
		assert.Equal(t, 4, nr)
		assert.Equal(t, 3, nc)
		w := utils.NewVector(3, []float64{1, -2, 0.5})
		wFine := T.MulVec(w)
		for _, u := range []float64{0, 0.2, 0.5, 0.9, 1} {
			assert.True(t, near(kv.Eval(w, u), R.Eval(wFine, u)))
		}
	}
	// Uniform refinement doubles the element count
	{
		kv := NewUniformKnots(3, 2)
		R, T := kv.RefineUniform()
		assert.Equal(t, 4, R.NumElements())
		nr, nc := T.Dims()
		assert.Equal(t, R.NumBasis(), nr)
		assert.Equal(t, kv.NumBasis(), nc)
		w := utils.NewVector(kv.NumBasis())
		for i := range w.DataP {
			w.DataP[i] = math.Sin(float64(i))
		}
		wFine := T.MulVec(w)
		for _, u := range []float64{0, 0.13, 0.25, 0.5, 0.75, 0.99, 1} {
			assert.True(t, near(kv.Eval(w, u), R.Eval(wFine, u)))
		}
	}
	// Insertion outside the open interval is rejected
	{
		kv := NewUniformKnots(2, 2)
		assert.Panics(t, func() { kv.InsertKnot(0) })
		assert.Panics(t, func() { kv.InsertKnot(1) })
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Abs(a) || math.Abs(a-b) < 1.e-10 {
		l = true
	}
	return
}
