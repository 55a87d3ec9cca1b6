package IGA2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirichletBoundaryValues(t *testing.T) {
	{ // Zero data gives zero values
		sys := newCanonicalSystem(t)
		vals, err := DirichletBoundaryValues(sys,
			func(x, y float64) float64 { return 0 })
		require.NoError(t, err)
		require.Equal(t, sys.DimG1Bdy(), vals.Len())
		assert.True(t, near(vals.Norm(), 0))
	}
	{ // The crossing derivative reads the collinear boundary side
		sys := newCanonicalSystem(t)
		vals, err := DirichletBoundaryValues(sys,
			func(x, y float64) float64 { return x * x })
		require.NoError(t, err)
		dofs := sys.DimG1Dofs()
		// At (1,0) the trace is 1 and the x derivative 2
		vbase := sys.Tables.BdyVertex[1] - dofs
		assert.True(t, near(vals.AtVec(vbase), 1))
		assert.True(t, near(vals.AtVec(vbase+1), 2))
		// At (1,1) the same, read from the north sides
		vbase = sys.Tables.BdyVertex[3] - dofs
		assert.True(t, near(vals.AtVec(vbase), 1))
		assert.True(t, near(vals.AtVec(vbase+1), 2))
	}
	{ // A kink next to the interface endpoint is rejected
		left := NewBSplineSquare(2, 2, 0)
		right := NewAffinePatch(2, 2, 0,
			[2]float64{1, 0}, [2]float64{1, 0.5}, [2]float64{0, 1})
		mp, err := NewMultiPatch(left, right)
		require.NoError(t, err)
		sys, err := NewG1System(mp, TopologyPolicy{TwoPatch: true})
		require.NoError(t, err)
		_, err = DirichletBoundaryValues(sys,
			func(x, y float64) float64 { return x })
		require.Error(t, err)
		var cfg *ConfigurationError
		assert.ErrorAs(t, err, &cfg)
	}
}
