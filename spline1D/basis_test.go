package spline1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasisFunctions(t *testing.T) {
	// Single element degree 2 reduces to the Bernstein basis
	{
		kv := NewUniformKnots(2, 1)
		for _, u := range []float64{0, 0.25, 0.5, 0.8, 1} {
			span := kv.Span(u)
			N := kv.BasisFuns(span, u)
			assert.True(t, near(N[0], (1-u)*(1-u)))
			assert.True(t, near(N[1], 2*u*(1-u)))
			assert.True(t, near(N[2], u*u))
		}
	}
	// Partition of unity and vanishing derivative sums
	{
		kv := NewUniformKnotsRegularity(3, 4, 1)
		for _, u := range []float64{0, 0.1, 0.25, 0.33, 0.5, 0.77, 1} {
			span := kv.Span(u)
			ders := kv.DersBasisFuns(span, u, 2)
			var sum0, sum1, sum2 float64
			for j := 0; j <= kv.P; j++ {
				sum0 += ders.At(0, j)
				sum1 += ders.At(1, j)
				sum2 += ders.At(2, j)
			}
			assert.True(t, near(sum0, 1))
			assert.InDelta(t, 0, sum1, 1.e-10)
			assert.InDelta(t, 0, sum2, 1.e-08)
		}
	}
	// Derivatives against the Bernstein closed forms
	{
		kv := NewUniformKnots(2, 1)
		u := 0.3
		ders := kv.DersBasisFuns(kv.Span(u), u, 2)
		assert.True(t, near(ders.At(1, 0), -2*(1-u)))
		assert.True(t, near(ders.At(1, 1), 2-4*u))
		assert.True(t, near(ders.At(1, 2), 2*u))
		assert.True(t, near(ders.At(2, 0), 2))
		assert.True(t, near(ders.At(2, 1), -4))
		assert.True(t, near(ders.At(2, 2), 2))
	}
}

func TestQuadrature(t *testing.T) {
	{
		X, W := GaussLegendre(2)
		assert.True(t, near(X.DataP[0], -1./math.Sqrt(3)))
		assert.True(t, near(X.DataP[1], 1./math.Sqrt(3)))
		assert.True(t, near(W.DataP[0], 1))
		assert.True(t, near(W.DataP[1], 1))
	}
	// Three points integrate x^4 exactly
	{
		X, W := GaussLegendre(3)
		var integral float64
		for i := range X.DataP {
			integral += W.DataP[i] * math.Pow(X.DataP[i], 4)
		}
		assert.True(t, near(integral, 2./5.))
	}
	// Element rule integrates over the whole interval
	{
		kv := NewUniformKnots(2, 3)
		eq := NewElementQuadrature(kv, 3)
		var total float64
		for e := range eq.Weights {
			for q := range eq.Weights[e].DataP {
				total += eq.Weights[e].DataP[q]
			}
		}
		assert.True(t, near(total, 1))
	}
}

func TestProjection(t *testing.T) {
	// Hat function mass matrix on one element
	{
		kv := NewUniformKnots(1, 1)
		M := kv.MassMatrix()
		assert.True(t, near(M.At(0, 0), 1./3.))
		assert.True(t, near(M.At(0, 1), 1./6.))
		assert.True(t, near(M.At(1, 1), 1./3.))
	}
	// Projection of a linear function recovers the Greville coefficients
	{
		kv := NewUniformKnots(2, 2)
		coefs, err := kv.ProjectL2(func(u float64) float64 { return u })
		assert.NoError(t, err)
		G := kv.Greville()
		for i := range coefs.DataP {
			assert.True(t, near(coefs.DataP[i], G.DataP[i]))
		}
	}
	// Functions inside the space project exactly
	{
		kv := NewUniformKnotsRegularity(3, 2, 1)
		f := func(u float64) float64 { return u*u*u - 2*u*u + 0.5 }
		coefs, err := kv.ProjectL2(f)
		assert.NoError(t, err)
		for _, u := range []float64{0, 0.2, 0.5, 0.7, 1} {
			assert.True(t, near(kv.Eval(coefs, u), f(u)))
		}
	}
}
