package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, A.DataP)
	}
	// Slice
	{
		M := NewMatrix(3, 3, []float64{
			1, 2, 3,
			4, 5, 6,
			7, 8, 9,
		})
		A := M.Slice(1, 3, 0, 2)
		assert.Equal(t, NewMatrix(2, 2, []float64{
			4, 5,
			7, 8,
		}), A)
	}
	// SliceRows / SliceCols
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		I := NewIndex(2, []int{1, 0})
		assert.Equal(t, NewMatrix(2, 3, []float64{
			4, 5, 6,
			1, 2, 3,
		}), M.SliceRows(I))
		assert.Equal(t, NewMatrix(2, 2, []float64{
			2, 1,
			5, 4,
		}), M.SliceCols(I))
	}
	// Mul
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		A := NewMatrix(3, 2, []float64{
			1, 0,
			0, 1,
			1, 1,
		})
		R := M.Mul(A)
		assert.Equal(t, NewMatrix(2, 2, []float64{
			4, 5,
			10, 11,
		}), R)
	}
	// Chainable mutators
	{
		M := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		M.Scale(2).AddScalar(1)
		assert.Equal(t, []float64{3, 5, 7, 9}, M.DataP)
		M.Apply(func(v float64) float64 { return v - 1 })
		assert.Equal(t, []float64{2, 4, 6, 8}, M.DataP)
	}
	// Col / Row with negative indexing from the end
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, []float64{3, 6}, M.Col(-1).DataP)
		assert.Equal(t, []float64{4, 5, 6}, M.Row(-1).DataP)
	}
	// ReadOnly protection
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("M")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
		M.SetWritable()
		assert.NotPanics(t, func() { M.Set(0, 0, 1) })
	}
}

func TestMatrixKron(t *testing.T) {
	A := NewMatrix(2, 2, []float64{
		1, 2,
		3, 4,
	})
	B := NewMatrix(2, 2, []float64{
		0, 1,
		1, 0,
	})
	R := A.Kron(B)
	assert.Equal(t, NewMatrix(4, 4, []float64{
		0, 1, 0, 2,
		1, 0, 2, 0,
		0, 3, 0, 4,
		3, 0, 4, 0,
	}), R)
	// Identity x A leaves block copies of A on the diagonal
	I2 := NewDiagMatrix(2, nil, 1)
	R2 := I2.Kron(A)
	assert.Equal(t, NewMatrix(4, 4, []float64{
		1, 2, 0, 0,
		3, 4, 0, 0,
		0, 0, 1, 2,
		0, 0, 3, 4,
	}), R2)
}

func TestMatrixSolve(t *testing.T) {
	// Inverse
	{
		M := NewMatrix(2, 2, []float64{
			2, 0,
			0, 4,
		})
		R, err := M.Inverse()
		assert.NoError(t, err)
		assert.True(t, near(R.At(0, 0), 0.5))
		assert.True(t, near(R.At(1, 1), 0.25))
	}
	// LUSolve against a known solution
	{
		M := NewMatrix(3, 3, []float64{
			4, 1, 0,
			1, 4, 1,
			0, 1, 4,
		})
		xExact := NewVector(3, []float64{1, -2, 3})
		b := M.MulVec(xExact)
		x, err := M.LUSolveVec(b)
		assert.NoError(t, err)
		for i, val := range x.DataP {
			assert.True(t, near(val, xExact.DataP[i]))
		}
	}
	// Cholesky on the same SPD system, rejection on an indefinite one
	{
		M := NewMatrix(3, 3, []float64{
			4, 1, 0,
			1, 4, 1,
			0, 1, 4,
		})
		xExact := NewVector(3, []float64{1, -2, 3})
		b := M.MulVec(xExact)
		x, err := M.CholeskySolveVec(b)
		assert.NoError(t, err)
		for i, val := range x.DataP {
			assert.True(t, near(val, xExact.DataP[i]))
		}
		N := NewMatrix(2, 2, []float64{
			1, 2,
			2, 1,
		})
		_, err = N.CholeskySolveVec(NewVector(2, []float64{1, 1}))
		assert.Error(t, err)
	}
}

func TestVector(t *testing.T) {
	{
		v := NewVector(3, []float64{3, 4, 0})
		assert.True(t, near(v.Norm(), 5))
		assert.True(t, near(v.Dot(v), 25))
		assert.Equal(t, 4., v.Max())
		assert.Equal(t, 0., v.Min())
	}
	{
		v := NewVector(3, []float64{1, 2, 3})
		w := v.Copy().Scale(2)
		assert.Equal(t, []float64{2, 4, 6}, w.DataP)
		assert.Equal(t, []float64{1, 2, 3}, v.DataP)
		v.Add(w)
		assert.Equal(t, []float64{3, 6, 9}, v.DataP)
		assert.Equal(t, []float64{9, 3}, v.Subset(Index{2, 0}).DataP)
	}
	{
		v := NewVector(2, []float64{1, 2})
		w := NewVector(3, []float64{1, 10, 100})
		R := v.Outer(w)
		assert.Equal(t, NewMatrix(2, 3, []float64{
			1, 10, 100,
			2, 20, 200,
		}), R)
	}
}

func TestIndex(t *testing.T) {
	I := NewRange(2, 5)
	assert.Equal(t, Index{2, 3, 4, 5}, I)
	assert.Equal(t, 5, I.Last())
	assert.Equal(t, Index{4, 5, 6, 7}, I.Add(2))
	assert.True(t, I.Contains(3))
	assert.False(t, I.Contains(6))
	assert.Equal(t, 0, Index{}.Last())
	J := NewRangeOffset(1, 3)
	assert.Equal(t, Index{0, 1, 2}, J)
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Abs(a) || math.Abs(a-b) < 1.e-10 {
		l = true
	}
	return
}
