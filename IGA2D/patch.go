/*
Package IGA2D implements smooth multi-patch spline discretizations in two
dimensions. A domain is covered by tensor product B-spline patches glued with
tangent plane continuity along their interfaces, and a sparse transformation
collects the patch local coefficients into one global set of degrees of
freedom.

The layout of the global numbering, the per entity function counts and the
final transformation follow the structure produced for planar two patch and
multi patch spline domains, with boundary conditions condensed out of the
reduced system before solving.
*/
package IGA2D

import (
	"math"

	"github.com/notargets/goiga/spline1D"
	"github.com/notargets/goiga/utils"
)

// TensorBasis is the tensor product of two univariate B-spline bases. Local
// functions are numbered lexicographically, u fastest
type TensorBasis struct {
	U, V spline1D.KnotVector
}

func NewTensorBasis(u, v spline1D.KnotVector) TensorBasis {
	return TensorBasis{U: u, V: v}
}

func (tb TensorBasis) DimU() int { return tb.U.NumBasis() }
func (tb TensorBasis) DimV() int { return tb.V.NumBasis() }
func (tb TensorBasis) Dim() int  { return tb.U.NumBasis() * tb.V.NumBasis() }

// Index maps a (u,v) function pair to the flat local index
func (tb TensorBasis) Index(i, j int) int {
	return j*tb.U.NumBasis() + i
}

// Active returns the flat indices and values of the nonzero basis functions
// at (u,v), with the parametric first derivatives
func (tb TensorBasis) Active(u, v float64) (loc utils.Index, val, du, dv []float64) {
	var (
		pu, pv   = tb.U.P, tb.V.P
		spanU    = tb.U.Span(u)
		spanV    = tb.V.Span(v)
		dersU    = tb.U.DersBasisFuns(spanU, u, 1)
		dersV    = tb.V.DersBasisFuns(spanV, v, 1)
		nnz      = (pu + 1) * (pv + 1)
		dimU     = tb.U.NumBasis()
		iu0, iv0 = spanU - pu, spanV - pv
	)
	loc = make(utils.Index, nnz)
	val = make([]float64, nnz)
	du = make([]float64, nnz)
	dv = make([]float64, nnz)
	for jj := 0; jj <= pv; jj++ {
		for ii := 0; ii <= pu; ii++ {
			k := jj*(pu+1) + ii
			loc[k] = (iv0+jj)*dimU + (iu0 + ii)
			val[k] = dersU.At(0, ii) * dersV.At(0, jj)
			du[k] = dersU.At(1, ii) * dersV.At(0, jj)
			dv[k] = dersU.At(0, ii) * dersV.At(1, jj)
		}
	}
	return
}

// EvalField evaluates a scalar spline field given by local coefficients
func (tb TensorBasis) EvalField(coefs utils.Vector, u, v float64) (f float64) {
	loc, val, _, _ := tb.Active(u, v)
	for k, l := range loc {
		f += coefs.AtVec(l) * val[k]
	}
	return
}

// EvalFieldGrad evaluates a scalar field and its parametric gradient
func (tb TensorBasis) EvalFieldGrad(coefs utils.Vector, u, v float64) (f, fu, fv float64) {
	loc, val, du, dv := tb.Active(u, v)
	for k, l := range loc {
		c := coefs.AtVec(l)
		f += c * val[k]
		fu += c * du[k]
		fv += c * dv[k]
	}
	return
}

// Patch is a planar tensor product B-spline patch. Coefs holds the control
// points, one row per local basis function, columns x and y
type Patch struct {
	Basis TensorBasis
	Coefs utils.Matrix
}

func NewPatch(basis TensorBasis, coefs utils.Matrix) (p *Patch) {
	var (
		nr, nc = coefs.Dims()
	)
	if nr != basis.Dim() || nc != 2 {
		panic("control net does not match basis dimension")
	}
	p = &Patch{Basis: basis, Coefs: coefs}
	return
}

// Eval maps a parameter point to physical coordinates
func (p *Patch) Eval(u, v float64) (x, y float64) {
	loc, val, _, _ := p.Basis.Active(u, v)
	for k, l := range loc {
		x += p.Coefs.At(l, 0) * val[k]
		y += p.Coefs.At(l, 1) * val[k]
	}
	return
}

// Jacobian returns the 2x2 geometry Jacobian at (u,v), column 0 the u
// tangent, column 1 the v tangent
func (p *Patch) Jacobian(u, v float64) (J utils.Matrix) {
	var (
		loc, _, du, dv = p.Basis.Active(u, v)
	)
	J = utils.NewMatrix(2, 2)
	for k, l := range loc {
		x, y := p.Coefs.At(l, 0), p.Coefs.At(l, 1)
		J.DataP[0] += x * du[k]
		J.DataP[1] += x * dv[k]
		J.DataP[2] += y * du[k]
		J.DataP[3] += y * dv[k]
	}
	return
}

// CornerParam returns the parameter coordinates of local corner c using the
// numbering 0:(0,0) 1:(1,0) 2:(0,1) 3:(1,1)
func CornerParam(c int) (u, v float64) {
	switch c {
	case 0:
		return 0, 0
	case 1:
		return 1, 0
	case 2:
		return 0, 1
	case 3:
		return 1, 1
	}
	panic("corner index out of range")
}

// Corner evaluates the physical position of local corner c
func (p *Patch) Corner(c int) (x, y float64) {
	u, v := CornerParam(c)
	return p.Eval(u, v)
}

// NewAffinePatch builds a patch whose geometry map is
// origin + u*eu + v*ev. Affine maps are reproduced exactly by Greville
// abscissae, so the control net is the image of the Greville grid
func NewAffinePatch(degree, nElements, regularity int,
	origin, eu, ev [2]float64) (p *Patch) {
	var (
		kv  = spline1D.NewUniformKnotsRegularity(degree, nElements, regularity)
		tb  = NewTensorBasis(kv, kv)
		gU  = tb.U.Greville()
		gV  = tb.V.Greville()
		cfs = utils.NewMatrix(tb.Dim(), 2)
	)
	for j := 0; j < tb.DimV(); j++ {
		for i := 0; i < tb.DimU(); i++ {
			l := tb.Index(i, j)
			gu, gv := gU.AtVec(i), gV.AtVec(j)
			cfs.Set(l, 0, origin[0]+gu*eu[0]+gv*ev[0])
			cfs.Set(l, 1, origin[1]+gu*eu[1]+gv*ev[1])
		}
	}
	return NewPatch(tb, cfs)
}

// NewBSplineRectangle builds an axis aligned rectangle [x0,x0+w]x[y0,y0+h]
func NewBSplineRectangle(degree, nElements, regularity int,
	x0, y0, w, h float64) *Patch {
	return NewAffinePatch(degree, nElements, regularity,
		[2]float64{x0, y0}, [2]float64{w, 0}, [2]float64{0, h})
}

// NewBSplineSquare builds the unit square [0,1]x[0,1]
func NewBSplineSquare(degree, nElements, regularity int) *Patch {
	return NewBSplineRectangle(degree, nElements, regularity, 0, 0, 1, 1)
}

// IsAffine reports whether the geometry Jacobian is constant over the patch,
// checked at the four corners and the center
func (p *Patch) IsAffine() bool {
	var (
		J0  = p.Jacobian(0.5, 0.5)
		tol = 1.e-12
	)
	for c := 0; c < 4; c++ {
		u, v := CornerParam(c)
		J := p.Jacobian(u, v)
		for k := range J.DataP {
			if math.Abs(J.DataP[k]-J0.DataP[k]) > tol {
				return false
			}
		}
	}
	return true
}
