package IGA2D

import (
	"testing"

	"github.com/notargets/goiga/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchRefineUniform(t *testing.T) {
	var (
		p       = NewBSplineRectangle(2, 2, 0, 1, -1, 2, 3)
		fine, T = p.RefineUniform()
		samples = [][2]float64{{0, 0}, {0.3, 0.7}, {0.5, 0.5}, {1, 1}}
	)
	{ // Dimensions double per direction
		assert.Equal(t, 9, fine.Basis.DimU())
		assert.Equal(t, 9, fine.Basis.DimV())
		nr, nc := T.Dims()
		assert.Equal(t, 81, nr)
		assert.Equal(t, 25, nc)
	}
	{ // The geometry is unchanged
		for _, uv := range samples {
			x0, y0 := p.Eval(uv[0], uv[1])
			x1, y1 := fine.Eval(uv[0], uv[1])
			assert.True(t, near(x0, x1))
			assert.True(t, near(y0, y1))
		}
		assert.True(t, fine.IsAffine())
	}
	{ // Transported coefficients reproduce the coarse field
		var (
			coarse = utils.NewVector(p.Basis.Dim())
			gU     = p.Basis.U.Greville()
			gV     = p.Basis.V.Greville()
		)
		for j := 0; j < p.Basis.DimV(); j++ {
			for i := 0; i < p.Basis.DimU(); i++ {
				coarse.SetVec(p.Basis.Index(i, j),
					gU.AtVec(i)*3-gV.AtVec(j))
			}
		}
		moved := T.MulVec(coarse)
		for _, uv := range samples {
			assert.True(t, near(
				p.Basis.EvalField(coarse, uv[0], uv[1]),
				fine.Basis.EvalField(moved, uv[0], uv[1])))
		}
	}
}

func TestMultiPatchRefineUniform(t *testing.T) {
	mp, err := NewTwoPatchSquare(2, 2, 0)
	require.NoError(t, err)
	fine, T, err := mp.RefineUniform()
	require.NoError(t, err)
	require.Equal(t, 2, len(T))
	assert.Equal(t, 6, len(fine.Vertices))
	assert.Equal(t, 1, len(fine.Interfaces))
	assert.Equal(t, 6, len(fine.Boundaries))
	{ // The refined interface doubles its element count
		topo, err := ClassifyTopology(fine, TopologyPolicy{TwoPatch: true})
		require.NoError(t, err)
		assert.Equal(t, 4, topo.Interfaces[0].N)
		assert.Equal(t, 2*1*3+2*2+1-4, topo.Interfaces[0].NumFunctions)
	}
}
