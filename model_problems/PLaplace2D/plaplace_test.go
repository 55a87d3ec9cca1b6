package PLaplace2D

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/notargets/goiga/IGA2D"
	"github.com/notargets/goiga/InputParameters"
	"github.com/notargets/goiga/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelCases(t *testing.T) {
	{ // Lookup normalizes the name and rejects unknowns
		mc, err := NewModelCase(" Quadratic ")
		require.NoError(t, err)
		assert.Equal(t, "quadratic", mc.Name)
		_, err = NewModelCase("vortex")
		require.Error(t, err)
		assert.Equal(t,
			[]string{"affine", "doublesine", "quadratic", "sinewave"},
			CaseNames())
	}
	points := [][2]float64{{0.3, 0.2}, {1.1, 0.7}, {1.9, 0.05}}
	{ // At p = 2 every source reduces to the Poisson right hand side
		for _, pt := range points {
			x, y := pt[0], pt[1]
			mc, _ := NewModelCase("affine")
			assert.True(t, near(mc.Source(0.01, 2, x, y), 0))
			mc, _ = NewModelCase("quadratic")
			assert.True(t, near(mc.Source(0.01, 2, x, y), -4))
			mc, _ = NewModelCase("sinewave")
			assert.True(t, near(mc.Source(0.01, 2, x, y),
				8*math.Pi*math.Pi*math.Sin(2*math.Pi*(x+y))))
			mc, _ = NewModelCase("doublesine")
			assert.True(t, near(mc.Source(0.01, 2, x, y),
				8*math.Pi*math.Pi*math.Sin(2*math.Pi*x)*math.Sin(2*math.Pi*y)))
		}
	}
	{ // Gradients match a central difference of the exact solution
		h := 1.e-5
		for _, name := range CaseNames() {
			mc, err := NewModelCase(name)
			require.NoError(t, err)
			for _, pt := range points {
				x, y := pt[0], pt[1]
				ux, uy := mc.Grad(x, y)
				dx := (mc.Exact(x+h, y) - mc.Exact(x-h, y)) / (2 * h)
				dy := (mc.Exact(x, y+h) - mc.Exact(x, y-h)) / (2 * h)
				assert.True(t, near(ux, dx, 1.e-6), "%s du/dx at %v", name, pt)
				assert.True(t, near(uy, dy, 1.e-6), "%s du/dy at %v", name, pt)
			}
		}
	}
	{ // The doublesine trace vanishes on the unit grid lines
		mc, _ := NewModelCase("doublesine")
		assert.True(t, mc.ZeroTrace)
		for _, tv := range []float64{0, 0.25, 0.5, 1} {
			assert.True(t, near(mc.Exact(tv, 0), 0))
			assert.True(t, near(mc.Exact(0, tv), 0))
			assert.True(t, near(mc.Exact(tv, 1), 0))
			assert.True(t, near(mc.Exact(2, tv), 0))
		}
	}
}

func newTwoPatchProblem(t *testing.T, caseName string,
	ip *InputParameters.ModelParameters) *PLaplace {
	mp, err := IGA2D.NewTwoPatchSquare(2, 2, 0)
	require.NoError(t, err)
	mc, err := NewModelCase(caseName)
	require.NoError(t, err)
	pl, err := NewPLaplace(mp, mc, ip)
	require.NoError(t, err)
	return pl
}

func TestNewPLaplaceDefaults(t *testing.T) {
	{ // A nil parameter set runs on the defaults
		pl := newTwoPatchProblem(t, "affine", nil)
		assert.Equal(t, 2., pl.P)
		assert.Equal(t, DefaultEpsilon, pl.Epsilon)
		assert.Equal(t, DefaultMaxIterations, pl.MaxIterations)
		assert.Equal(t, DefaultTolerance, pl.Tolerance)
		assert.Equal(t, 3, pl.NQ)
		assert.True(t, pl.Policy.TwoPatch)
	}
	{ // The input parameters override where set
		ip := &InputParameters.ModelParameters{
			P: 1.5, Epsilon: 0.1, MaxIterations: 7, Tolerance: 1.e-6,
		}
		pl := newTwoPatchProblem(t, "affine", ip)
		assert.Equal(t, 1.5, pl.P)
		assert.Equal(t, 0.1, pl.Epsilon)
		assert.Equal(t, 7, pl.MaxIterations)
		assert.Equal(t, 1.e-6, pl.Tolerance)
	}
	{ // Exponents at or below one are rejected
		mp, err := IGA2D.NewTwoPatchSquare(2, 2, 0)
		require.NoError(t, err)
		mc, _ := NewModelCase("affine")
		_, err = NewPLaplace(mp, mc, &InputParameters.ModelParameters{P: 1})
		require.Error(t, err)
		_, err = NewPLaplace(mp, mc,
			&InputParameters.ModelParameters{Epsilon: -0.01})
		require.Error(t, err)
	}
	{ // Neumann boundary conditions have no Dirichlet lift
		mp, err := IGA2D.NewTwoPatchSquare(2, 2, 0)
		require.NoError(t, err)
		mc, _ := NewModelCase("affine")
		ip := &InputParameters.ModelParameters{
			BCs: map[string]map[int]map[string]float64{"Neuman": nil},
		}
		_, err = NewPLaplace(mp, mc, ip)
		require.Error(t, err)
	}
	{ // The solve entry points require their predecessors
		pl := newTwoPatchProblem(t, "affine", nil)
		_, _, err := pl.Iterate()
		require.Error(t, err)
		_, _, _, err = pl.Assemble(nil)
		require.Error(t, err)
		_, _, err = pl.ErrorNorms()
		require.Error(t, err)
		require.Error(t, pl.PlotSolution(InputParameters.PlotMeta{}))
	}
	{ // Layouts with interior vertices are rejected at setup
		mp, err := IGA2D.NewSquareGrid(2, 2, 0, 2, 2)
		require.NoError(t, err)
		mc, _ := NewModelCase("affine")
		pl, err := NewPLaplace(mp, mc, nil)
		require.NoError(t, err)
		err = pl.Setup()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "interior vertex")
	}
}

func TestAssembleExactness(t *testing.T) {
	pl := newTwoPatchProblem(t, "affine", nil)
	require.NoError(t, pl.Setup())
	zeroField := func() (w []utils.Vector) {
		for _, patch := range pl.MP.Patches {
			w = append(w, utils.NewVector(patch.Basis.Dim()))
		}
		return
	}
	K, f, J, err := pl.Assemble(zeroField())
	require.NoError(t, err)
	{ // The affine case has a zero load
		assert.True(t, near(f.Norm(), 0))
	}
	{ // The energy of the zero field is (eps^p / p) times the domain area
		assert.True(t, near(J, 1.e-4, 1.e-12))
	}
	{ // Constants lie in the stiffness kernel, row sums vanish
		rowSum := make([]float64, pl.Sys.DimK())
		K.DoNonZero(func(i, j int, v float64) {
			rowSum[i] += v
		})
		for i, rs := range rowSum {
			assert.True(t, near(rs, 0, 1.e-10), "row %d sums to %v", i, rs)
		}
	}
	{ // The weighted stiffness is symmetric
		entries := make(map[[2]int]float64)
		K.DoNonZero(func(i, j int, v float64) {
			entries[[2]int{i, j}] = v
		})
		for ij, v := range entries {
			assert.True(t, near(v, entries[[2]int{ij[1], ij[0]}], 1.e-12))
		}
	}
	{ // The load sums to the integral of the source
		plQ := newTwoPatchProblem(t, "quadratic", nil)
		require.NoError(t, plQ.Setup())
		_, fQ, _, err := plQ.Assemble(zeroField())
		require.NoError(t, err)
		var sum float64
		for i := 0; i < fQ.Len(); i++ {
			sum += fQ.AtVec(i)
		}
		assert.True(t, near(sum, -8, 1.e-8))
	}
}

func TestReducedGradientIdentity(t *testing.T) {
	// The assembled gradient D0 (K w - f) must match A x - F of the reduced
	// system formed from the same stiffness
	pl := newTwoPatchProblem(t, "quadratic",
		&InputParameters.ModelParameters{P: 3})
	require.NoError(t, pl.Setup())
	x := utils.NewVector(pl.Sys.Total())
	for i := range x.DataP {
		x.DataP[i] = math.Sin(float64(i))
	}
	w, err := pl.Sys.ReconstructField(x)
	require.NoError(t, err)
	K, f, _, err := pl.Assemble(w)
	require.NoError(t, err)
	r := pl.reducedGradient(K, f, w)
	A, err := pl.Sys.ReducedOperator(K)
	require.NoError(t, err)
	F, err := pl.Sys.ReducedRHS(K, f)
	require.NoError(t, err)
	rAlt := A.MulVec(x).Subtract(F)
	require.Equal(t, r.Len(), rAlt.Len())
	for i := 0; i < r.Len(); i++ {
		assert.True(t, near(r.AtVec(i), rAlt.AtVec(i), 1.e-9),
			"entry %d: %v vs %v", i, r.AtVec(i), rAlt.AtVec(i))
	}
}

func TestPoissonExactness(t *testing.T) {
	// At p = 2 the problem is linear and the quadratic solution lies in the
	// consolidated space, so the starting fixed point solve lands on it
	pl := newTwoPatchProblem(t, "quadratic",
		&InputParameters.ModelParameters{Tolerance: 1.e-9})
	require.NoError(t, pl.Setup())
	iters, resid, err := pl.Iterate()
	require.NoError(t, err)
	assert.Equal(t, 1, iters)
	assert.Less(t, resid, 1.e-9)
	eL2, eH1, err := pl.ErrorNorms()
	require.NoError(t, err)
	assert.Less(t, eL2, 1.e-7)
	assert.Less(t, eH1, 1.e-6)
}

func TestPLaplaceAffineExactness(t *testing.T) {
	// Affine solutions are reproduced for every exponent. The source is
	// zero and the free functions carry no boundary trace, so the discrete
	// minimizer is the affine interpolant itself
	for _, p := range []float64{1.5, 3} {
		pl := newTwoPatchProblem(t, "affine",
			&InputParameters.ModelParameters{P: p, MaxIterations: 200})
		require.NoError(t, pl.Setup())
		zeroW, err := pl.Sys.ReconstructField(utils.NewVector(pl.Sys.Total()))
		require.NoError(t, err)
		_, _, j0, err := pl.Assemble(zeroW)
		require.NoError(t, err)
		iters, resid, err := pl.Iterate()
		require.NoError(t, err)
		assert.Less(t, iters, pl.MaxIterations, "p = %v", p)
		assert.LessOrEqual(t, resid, pl.Tolerance, "p = %v", p)
		assert.Less(t, pl.Energy, j0, "p = %v", p)
		eL2, eH1, err := pl.ErrorNorms()
		require.NoError(t, err)
		assert.Less(t, eL2, 1.e-6, "p = %v", p)
		assert.Less(t, eH1, 1.e-5, "p = %v", p)
		{ // The reconstructed field is single valued across the interface
			a, b := pl.MP.Patches[0], pl.MP.Patches[1]
			for _, v := range []float64{0, 0.3, 0.75, 1} {
				va := a.Basis.EvalField(pl.WLoc[0], 1, v)
				vb := b.Basis.EvalField(pl.WLoc[1], 0, v)
				assert.True(t, near(va, vb, 1.e-8), "p = %v at v = %v", p, v)
			}
		}
	}
}

func TestRefinementStudy(t *testing.T) {
	{ // Rates recover exact order two and one data
		results := []LevelResult{
			{Level: 0, H: 1, EL2: 4.e-2, EH1: 2.e-1},
			{Level: 1, H: 0.5, EL2: 1.e-2, EH1: 1.e-1},
		}
		finishRates(results)
		assert.True(t, near(results[1].RateL2, 2))
		assert.True(t, near(results[1].RateH1, 1))
		assert.Equal(t, 0., results[0].RateL2)
	}
	{ // A representable Poisson solution stays exact across levels
		pl := newTwoPatchProblem(t, "quadratic",
			&InputParameters.ModelParameters{Tolerance: 1.e-9})
		results, err := pl.RunStudy(2)
		require.NoError(t, err)
		require.Equal(t, 2, len(results))
		assert.True(t, near(results[0].H, 0.5))
		assert.True(t, near(results[1].H, 0.25))
		for _, lr := range results {
			assert.Equal(t, 1, lr.Iterations)
			assert.Less(t, lr.EL2, 1.e-7)
		}
	}
	{ // A smooth non representable solution converges under refinement
		pl := newTwoPatchProblem(t, "sinewave",
			&InputParameters.ModelParameters{Tolerance: 1.e-9})
		results, err := pl.RunStudy(3)
		require.NoError(t, err)
		require.Equal(t, 3, len(results))
		for i := 1; i < len(results); i++ {
			assert.Less(t, results[i].EL2, results[i-1].EL2)
			assert.Less(t, results[i].EH1, results[i-1].EH1)
			assert.Greater(t, results[i].RateL2, 1.)
		}
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, "sinewave-p2", results))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Equal(t, 4, len(lines))
		assert.True(t, strings.HasPrefix(lines[0], "title,level,h"))
		assert.True(t, strings.HasPrefix(lines[1], "sinewave-p2,0,"))
		PrintTable(results)
	}
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	if math.Abs(a-b) < tol {
		l = true
	}
	return
}
