package IGA2D

import (
	"github.com/notargets/goiga/utils"
)

// SparseSolver solves the reduced system A x = F
type SparseSolver interface {
	Solve(A utils.CSR, b utils.Vector) (utils.Vector, error)
	Name() string
}

// CGDiagonal is conjugate gradient with Jacobi preconditioning. The reduced
// operator has zero rows for the condensed boundary block, which the
// preconditioner passes through, so it handles the full size system the
// finalizer produces
type CGDiagonal struct {
	Tol float64 // residual tolerance relative to the load, 0 for the default
}

func (s CGDiagonal) Name() string { return "CG-diagonal" }

func (s CGDiagonal) Solve(A utils.CSR, b utils.Vector) (x utils.Vector, err error) {
	if s.Tol > 0 {
		x, _, _, err = utils.SolveCGDiagonal(A, b, s.Tol)
	} else {
		x, _, _, err = utils.SolveCGDiagonal(A, b)
	}
	return
}

// DenseLU densifies the operator and factorizes it. Only usable when the
// operator is nonsingular, which the reduced system is not, so this serves
// small subsystem and test problems
type DenseLU struct{}

func (DenseLU) Name() string { return "dense-LU" }

func (DenseLU) Solve(A utils.CSR, b utils.Vector) (x utils.Vector, err error) {
	return A.ToDense().LUSolveVec(b)
}

// DenseCholesky densifies the operator and factorizes it as symmetric
// positive definite, for subsystems where that holds
type DenseCholesky struct{}

func (DenseCholesky) Name() string { return "dense-Cholesky" }

func (DenseCholesky) Solve(A utils.CSR, b utils.Vector) (x utils.Vector, err error) {
	return A.ToDense().CholeskySolveVec(b)
}
