package IGA2D

import (
	"testing"

	"github.com/notargets/goiga/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseSolvers(t *testing.T) {
	// All back ends agree on a small positive definite system
	var (
		n   = 5
		dok = utils.NewDOK(n, n)
	)
	for i := 0; i < n; i++ {
		dok.Set(i, i, 4)
		if i > 0 {
			dok.Set(i, i-1, 1)
			dok.Set(i-1, i, 1)
		}
	}
	var (
		A      = dok.ToCSR()
		xExact = utils.NewVector(n, []float64{1, -1, 2, 0.5, -3})
		b      = A.MulVec(xExact)
	)
	for _, solver := range []SparseSolver{
		CGDiagonal{}, DenseLU{}, DenseCholesky{},
	} {
		x, err := solver.Solve(A, b)
		require.NoError(t, err, solver.Name())
		for i := 0; i < n; i++ {
			assert.True(t, near(x.AtVec(i), xExact.AtVec(i), 1.e-8),
				"%s entry %d", solver.Name(), i)
		}
	}
	{ // The Cholesky back end rejects an indefinite operator
		ind := utils.NewDOK(2, 2)
		ind.Set(0, 0, 1)
		ind.Set(0, 1, 2)
		ind.Set(1, 0, 2)
		ind.Set(1, 1, 1)
		_, err := DenseCholesky{}.Solve(ind.ToCSR(),
			utils.NewVector(2, []float64{1, 1}))
		require.Error(t, err)
	}
}
