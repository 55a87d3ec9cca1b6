package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/notargets/goiga/InputParameters"
)

func TestRunPLaplace(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
Case: sinewave # Can be affine, quadratic or doublesine
P: 3.
Epsilon: 0.01
PolynomialOrder: 2
Regularity: 0
ElementCount: 4
GridNX: 2
GridNY: 1
Levels: 3
MaxIterations: 100
Tolerance: 1.e-10
BCs:
  Dirichlet:
      1:
         Scale: 1.0
`)
	var input InputParameters.ModelParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	// Check Dirichlet BC on side 1
	assert.Equal(t, input.BCs["Dirichlet"][1]["Scale"], 1.)
	input.Print()
	assert.Equal(t, input.P, 3.)
	assert.Equal(t, input.Case, "sinewave")
	assert.Equal(t, input.Levels, 3)
	neumann, err := input.Neumann()
	if err != nil {
		panic(err)
	}
	assert.Equal(t, neumann, false)
}
