package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m *DOK) SetWritable() DOK {
	m.readOnly = false
	return *m
}

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	var (
		nr, nc = m.Dims()
	)
	i, j = lim(i, nr), lim(j, nc)
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

// Accumulate adds val into position (i, j).
func (m DOK) Accumulate(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

func (m DOK) Nnz() int { return m.M.NNZ() }

func (m DOK) DoNonZero(fn func(i, j int, v float64)) { m.M.DoNonZero(fn) }

func (m DOK) ToCSR() (R CSR) {
	R = CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
	return
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

type CSR struct {
	M    *sparse.CSR
	name string
}

// NewCSR creates an empty CSR matrix, usable as a product receiver.
func NewCSR(nr, nc int) (R CSR) {
	R = CSR{
		M:    sparse.NewCSR(nr, nc, nil, nil, nil),
		name: "unnamed",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

func (m CSR) Nnz() int { return m.M.NNZ() }

func (m CSR) DoNonZero(fn func(i, j int, v float64)) { m.M.DoNonZero(fn) }

// Mul stores the product a x b in the receiver.
func (m CSR) Mul(a, b mat.Matrix) CSR { // Changes receiver
	m.M.Mul(a, b)
	return m
}

// MulVec computes m x v by visiting the stored nonzeros once.
func (m CSR) MulVec(v Vector) (R Vector) {
	var (
		nr, nc = m.Dims()
	)
	if v.Len() != nc {
		err := fmt.Errorf("dimension mismatch in MulVec: nc, len(v) = %v, %v\n", nc, v.Len())
		panic(err)
	}
	R = NewVector(nr)
	m.M.DoNonZero(func(i, j int, val float64) {
		R.DataP[i] += val * v.DataP[j]
	})
	return
}

// MulVecT computes transpose(m) x v without forming the transpose.
func (m CSR) MulVecT(v Vector) (R Vector) {
	var (
		nr, nc = m.Dims()
	)
	if v.Len() != nr {
		err := fmt.Errorf("dimension mismatch in MulVecT: nr, len(v) = %v, %v\n", nr, v.Len())
		panic(err)
	}
	R = NewVector(nc)
	m.M.DoNonZero(func(i, j int, val float64) {
		R.DataP[j] += val * v.DataP[i]
	})
	return
}

// Diagonal extracts the main diagonal into a vector.
func (m CSR) Diagonal() (R Vector) {
	var (
		nr, nc = m.Dims()
		n      = nr
	)
	if nc < n {
		n = nc
	}
	R = NewVector(n)
	m.M.DoNonZero(func(i, j int, val float64) {
		if i == j && i < n {
			R.DataP[i] = val
		}
	})
	return
}

// ToDense converts the sparse matrix to a dense Matrix.
func (m CSR) ToDense() (R Matrix) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	m.M.DoNonZero(func(i, j int, val float64) {
		R.DataP[i*nc+j] = val
	})
	return
}
