package IGA2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoPatchTopology(t *testing.T) {
	mp, err := NewTwoPatchSquare(2, 2, 0)
	require.NoError(t, err)
	{ // Vertices in first discovery order
		require.Equal(t, 6, len(mp.Vertices))
		wantXY := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 0}, {2, 1}}
		for vID, want := range wantXY {
			assert.True(t, near(mp.Vertices[vID].XY[0], want[0]))
			assert.True(t, near(mp.Vertices[vID].XY[1], want[1]))
		}
		// Interface endpoints are shared by both patches
		assert.Equal(t, []int{0, 1}, mp.Vertices[1].Patches())
		assert.Equal(t, []int{0, 1}, mp.Vertices[3].Patches())
		assert.Equal(t, []int{0}, mp.Vertices[0].Patches())
	}
	{ // One interface, glued east to west with aligned parameters
		require.Equal(t, 1, len(mp.Interfaces))
		iface := mp.Interfaces[0]
		assert.Equal(t, PatchSide{0, East}, iface.A)
		assert.Equal(t, PatchSide{1, West}, iface.B)
		assert.Equal(t, 1, iface.VStart)
		assert.Equal(t, 3, iface.VEnd)
	}
	{ // Six outer boundary sides
		require.Equal(t, 6, len(mp.Boundaries))
		for _, b := range mp.Boundaries {
			assert.NotEqual(t, b.VStart, b.VEnd)
		}
		assert.Equal(t, PatchSide{0, South}, mp.Boundaries[0].PatchSide)
		assert.Equal(t, PatchSide{1, North}, mp.Boundaries[5].PatchSide)
	}
	{ // Adjacency graph
		assert.Equal(t, 1, mp.PairwiseInterfaces([]int{0, 1}))
		assert.Equal(t, 0, mp.PairwiseInterfaces([]int{0}))
	}
	{ // Side basis sizes
		assert.Equal(t, 5, mp.SideBasisSize(PatchSide{0, East}))
		assert.Equal(t, 5, mp.SideBasisSize(PatchSide{1, South}))
	}
}

func TestSquareGridTopology(t *testing.T) {
	mp, err := NewSquareGrid(2, 2, 0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, len(mp.Patches))
	assert.Equal(t, 9, len(mp.Vertices))
	assert.Equal(t, 4, len(mp.Interfaces))
	assert.Equal(t, 8, len(mp.Boundaries))
	{ // The center vertex joins all four patches
		center := mp.CornerVertex[0][3]
		assert.Equal(t, 4, len(mp.Vertices[center].Patches()))
		assert.True(t, near(mp.Vertices[center].XY[0], 1))
		assert.True(t, near(mp.Vertices[center].XY[1], 1))
	}
	assert.Equal(t, 4, mp.PairwiseInterfaces([]int{0, 1, 2, 3}))
	assert.Equal(t, 1, mp.PairwiseInterfaces([]int{0, 1}))
	assert.Equal(t, 0, mp.PairwiseInterfaces([]int{0, 3}))
}

func TestTopologyRejectsMisalignedGluing(t *testing.T) {
	{ // Second patch runs v downward along the shared edge
		left := NewBSplineSquare(2, 2, 0)
		right := NewAffinePatch(2, 2, 0,
			[2]float64{1, 1}, [2]float64{1, 0}, [2]float64{0, -1})
		_, err := NewMultiPatch(left, right)
		require.Error(t, err)
		var cfg *ConfigurationError
		assert.ErrorAs(t, err, &cfg)
	}
	{ // Stacked duplicate patches share every edge three ways
		a := NewBSplineSquare(2, 2, 0)
		b := NewBSplineSquare(2, 2, 0)
		c := NewBSplineSquare(2, 2, 0)
		_, err := NewMultiPatch(a, b, c)
		require.Error(t, err)
	}
	{ // Empty input
		_, err := NewMultiPatch()
		require.Error(t, err)
	}
}
