package PLaplace2D

import (
	"fmt"

	"github.com/notargets/goiga/IGA2D"
	"github.com/notargets/goiga/InputParameters"
	"github.com/notargets/goiga/utils"
)

// Iteration controls, used where the input parameters leave them unset
const (
	DefaultEpsilon       = 0.01
	DefaultMaxIterations = 100
	DefaultTolerance     = 1.e-10
)

// Stepsize rule constants. The rule shrinks until the energy decrease
// condition holds, then grows while the curvature condition fails
const (
	StepMu        = 1.e-4
	StepSigma     = 0.9
	StepShrink    = 0.8
	StepGrow      = 1.2
	MaxStepTrials = 10
)

/*
PLaplace solves the regularized p-Laplace model problem

	-div((eps^2 + |grad u|^2)^((p-2)/2) grad u) = f

on a planar multi patch spline domain. Each linear solve runs through the
consolidated system, so the iterates are C1 across the patch interfaces by
construction. The outer iteration is damped Newton on the energy with the
stepsize rule above, started from one fixed point step at the seed weight
*/
type PLaplace struct {
	// Input parameters
	P, Epsilon    float64
	MaxIterations int
	Tolerance     float64
	NQ            int // quadrature points per direction and knot span
	Case          ModelCase
	MP            *IGA2D.MultiPatch
	Policy        IGA2D.TopologyPolicy
	Solver        IGA2D.SparseSolver
	// Solution state
	Sys      *IGA2D.G1System
	X        utils.Vector   // consolidated coefficients, free block then interior
	WLoc     []utils.Vector // patch local coefficients of X
	Energy   float64
	Residual float64
	seed     []utils.Vector
}

// iterState carries the assembled system at one iterate
type iterState struct {
	x utils.Vector
	w []utils.Vector
	K utils.CSR
	f utils.Vector
	J float64
	r utils.Vector // reduced gradient D0 (K w - f)
}

/*
NewPLaplace builds the model problem on the given domain. The input
parameters override the iteration controls where set, a nil ip runs on the
defaults. The affine consolidation rules carry the boundary data, so the
solver runs Dirichlet problems only
*/
func NewPLaplace(mp *IGA2D.MultiPatch, mc ModelCase,
	ip *InputParameters.ModelParameters) (pl *PLaplace, err error) {
	pl = &PLaplace{
		P:             2,
		Epsilon:       DefaultEpsilon,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Case:          mc,
		MP:            mp,
		Policy:        IGA2D.TopologyPolicy{TwoPatch: true},
		Solver:        IGA2D.CGDiagonal{},
	}
	if ip != nil {
		if ip.P != 0 {
			pl.P = ip.P
		}
		if ip.Epsilon != 0 {
			pl.Epsilon = ip.Epsilon
		}
		if ip.MaxIterations != 0 {
			pl.MaxIterations = ip.MaxIterations
		}
		if ip.Tolerance != 0 {
			pl.Tolerance = ip.Tolerance
		}
		neumann, eN := ip.Neumann()
		if eN != nil {
			return nil, eN
		}
		if neumann {
			return nil, fmt.Errorf(
				"p-Laplace runs with Dirichlet data only")
		}
	}
	if pl.P <= 1 {
		return nil, fmt.Errorf("exponent p = %v, need p > 1", pl.P)
	}
	if pl.Epsilon <= 0 {
		return nil, fmt.Errorf("regularization eps = %v, need eps > 0",
			pl.Epsilon)
	}
	for _, patch := range mp.Patches {
		if nq := patch.Basis.U.P + 1; nq > pl.NQ {
			pl.NQ = nq
		}
		if nq := patch.Basis.V.P + 1; nq > pl.NQ {
			pl.NQ = nq
		}
	}
	return
}

/*
Setup consolidates the current domain and condenses the boundary data of
the model case into the system. Zero trace cases finalize against
homogeneous data, the others against the trace projection of the exact
solution. Setup runs once per refinement level
*/
func (pl *PLaplace) Setup() (err error) {
	pl.Sys, err = IGA2D.NewG1System(pl.MP, pl.Policy)
	if err != nil {
		return
	}
	for _, vt := range pl.Sys.Topo.Vertices {
		if vt.Kind == IGA2D.VertexInterior {
			return fmt.Errorf("patch layout has an interior vertex," +
				" the affine rules consolidate strips only")
		}
	}
	if err = IGA2D.PopulateAffineG1System(pl.Sys); err != nil {
		return
	}
	var vals utils.Vector
	if !pl.Case.ZeroTrace {
		vals, err = IGA2D.DirichletBoundaryValues(pl.Sys, pl.Case.Exact)
		if err != nil {
			return
		}
	}
	return pl.Sys.Finalize(vals)
}

// evaluate assembles the system at the consolidated coefficients x
func (pl *PLaplace) evaluate(x utils.Vector) (st iterState, err error) {
	st.x = x
	if st.w, err = pl.Sys.ReconstructField(x); err != nil {
		return
	}
	if st.K, st.f, st.J, err = pl.Assemble(st.w); err != nil {
		return
	}
	st.r = pl.reducedGradient(st.K, st.f, st.w)
	if utils.IsNan(st.J) || utils.IsNan(st.r) {
		err = fmt.Errorf("iteration diverged, energy or gradient is NaN")
	}
	return
}

// reducedGradient forms D0 (K w - f), the gradient of the energy in the
// consolidated coefficients
func (pl *PLaplace) reducedGradient(K utils.CSR, f utils.Vector,
	w []utils.Vector) utils.Vector {
	return pl.Sys.D0.MulVec(K.MulVec(pl.flatten(w)).Subtract(f))
}

// flatten concatenates the patch local coefficient vectors in the column
// layout of the transformation
func (pl *PLaplace) flatten(w []utils.Vector) (wf utils.Vector) {
	wf = utils.NewVector(pl.Sys.DimK())
	for np, f := range w {
		lo := pl.Sys.Tables.PatchLocal[np]
		for i := 0; i < f.Len(); i++ {
			wf.SetVec(lo+i, f.AtVec(i))
		}
	}
	return
}

// kacanovStart runs one fixed point step, assembling at the seed weight and
// solving the resulting linear system. With no seed the weight comes from
// the boundary lift alone. At p = 2 the step solves the problem outright
func (pl *PLaplace) kacanovStart() (st iterState, err error) {
	seed := pl.seed
	if seed == nil {
		seed, err = pl.Sys.ReconstructField(utils.NewVector(pl.Sys.Total()))
		if err != nil {
			return
		}
	}
	K, f, _, err := pl.Assemble(seed)
	if err != nil {
		return
	}
	x, err := pl.Sys.Solve(K, f, pl.Solver)
	if err != nil {
		return
	}
	return pl.evaluate(x)
}

/*
Iterate runs the nonlinear iteration to the residual tolerance or the
iteration cap. The count includes the starting fixed point solve, so a
linear problem reports one iteration. The converged coefficients and patch
local fields land in X and WLoc
*/
func (pl *PLaplace) Iterate() (iters int, resid float64, err error) {
	if pl.Sys == nil || !pl.Sys.Finalized() {
		return 0, 0, fmt.Errorf("iterate needs a finalized system, run Setup")
	}
	st, err := pl.kacanovStart()
	if err != nil {
		return
	}
	iters = 1
	for iters < pl.MaxIterations {
		if resid = st.r.Norm(); resid <= pl.Tolerance {
			break
		}
		A, eA := pl.Sys.ReducedOperator(st.K)
		if eA != nil {
			return iters, resid, eA
		}
		s, eS := pl.Solver.Solve(A, st.r.Copy().Scale(-1))
		if eS != nil {
			return iters, resid, eS
		}
		var tau float64
		if st, tau, err = pl.lineSearch(st, s); err != nil {
			return
		}
		iters++
		fmt.Printf("iteration %3d: tau = %5.3f, energy = %12.8f, residual = %8.2e\n",
			iters, tau, st.J, st.r.Norm())
	}
	resid = st.r.Norm()
	pl.X, pl.WLoc = st.x, st.w
	pl.Energy, pl.Residual = st.J, resid
	pl.seed = nil
	return
}

/*
lineSearch damps the step s by the stepsize rule. Starting at tau = 1 it
shrinks while the energy decrease condition fails, otherwise grows while the
decrease holds but the curvature condition fails, up to MaxStepTrials
evaluations either way. The returned state is the last one evaluated
*/
func (pl *PLaplace) lineSearch(st iterState, s utils.Vector) (next iterState,
	tau float64, err error) {
	var (
		rs     = st.r.Dot(s)
		c1, c2 bool
	)
	try := func() error {
		xt := st.x.Copy().Add(s.Copy().Scale(tau))
		if next, err = pl.evaluate(xt); err != nil {
			return err
		}
		c1 = next.J <= st.J+tau*StepMu*rs
		c2 = next.r.Dot(s) >= StepSigma*rs
		return nil
	}
	tau = 1
	if err = try(); err != nil {
		return
	}
	trials := 1
	if !c1 {
		for !c1 && trials < MaxStepTrials {
			tau *= StepShrink
			if err = try(); err != nil {
				return
			}
			trials++
		}
	} else if !c2 {
		for c1 && !c2 && trials < MaxStepTrials {
			tau *= StepGrow
			if err = try(); err != nil {
				return
			}
			trials++
		}
	}
	return
}
