package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))

		// Test maximum/minimum indices
		en = NewEdgeKey([2]int{1, 1<<32 - 1})
		assert.Equal(t, EdgeKey((1<<32-1)<<32+1), en)
		assert.Equal(t, [2]int{1, 1<<32 - 1}, en.GetVertices(false))
	}
	{ // Directed edges keep their orientation, keys do not
		e := NewEdgeInt([2]int{7, 3})
		assert.Equal(t, [2]int{7, 3}, e.GetVertices())
		assert.Equal(t, NewEdgeKey([2]int{3, 7}), e.GetKey())

		e2 := NewEdgeInt([2]int{3, 7})
		assert.Equal(t, [2]int{3, 7}, e2.GetVertices())
		assert.Equal(t, e.GetKey(), e2.GetKey())
		assert.NotEqual(t, e, e2)
	}
	{
		tokens := []string{"Dirichlet", "dirichlet-left", "Neumann-2", "neuman", "unknown"}
		flags := []BCFLAG{BC_Dirichlet, BC_Dirichlet, BC_Neumann, BC_Neumann, BC_None}
		labels := []string{"", "left", "2", "", ""}
		for i, token := range tokens {
			bt := NewBCTAG(token)
			assert.Equal(t, flags[i], bt.GetFLAG())
			assert.Equal(t, labels[i], bt.GetLabel())
		}
	}
}
