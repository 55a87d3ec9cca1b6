package PLaplace2D

import (
	"fmt"
	"math"

	"github.com/notargets/goiga/spline1D"
	"github.com/notargets/goiga/utils"
)

/*
Assemble integrates the weighted stiffness, the load and the energy at the
patch local field w. The weight (eps^2 + |grad w|^2)^((p-2)/2) freezes the
nonlinearity, so K w - f is the gradient of the energy

	J(w) = sum over patches of int (1/p)(eps^2+|grad w|^2)^(p/2) - f w

K comes out block diagonal over the patches in the row layout of the
consolidation tables, one Gauss rule of NQ points per direction and knot
span. At p = 2 the weight is one and K is the plain stiffness
*/
func (pl *PLaplace) Assemble(w []utils.Vector) (K utils.CSR, f utils.Vector,
	J float64, err error) {
	if pl.Sys == nil {
		return K, f, J, fmt.Errorf("assemble needs the consolidation"+
			" tables, run Setup")
	}
	if len(w) != len(pl.MP.Patches) {
		return K, f, J, fmt.Errorf("field has %d patches, domain has %d",
			len(w), len(pl.MP.Patches))
	}
	var (
		dimK = pl.Sys.DimK()
		dok  = utils.NewDOK(dimK, dimK)
	)
	f = utils.NewVector(dimK)
	for np, patch := range pl.MP.Patches {
		var (
			tb   = patch.Basis
			row0 = pl.Sys.Tables.PatchLocal[np]
			qu   = spline1D.NewElementQuadrature(tb.U, pl.NQ)
			qv   = spline1D.NewElementQuadrature(tb.V, pl.NQ)
			gx   = make([]float64, (tb.U.P+1)*(tb.V.P+1))
			gy   = make([]float64, (tb.U.P+1)*(tb.V.P+1))
		)
		if w[np].Len() != tb.Dim() {
			return K, f, J, fmt.Errorf(
				"patch %d field has %d coefficients, basis has %d",
				np, w[np].Len(), tb.Dim())
		}
		for ev := range qv.Points {
			for eu := range qu.Points {
				for iv := 0; iv < qv.Points[ev].Len(); iv++ {
					for iu := 0; iu < qu.Points[eu].Len(); iu++ {
						var (
							u, wtU = qu.Points[eu].AtVec(iu), qu.Weights[eu].AtVec(iu)
							v, wtV = qv.Points[ev].AtVec(iv), qv.Weights[ev].AtVec(iv)
							Jm     = patch.Jacobian(u, v)
							xu, xv = Jm.At(0, 0), Jm.At(0, 1)
							yu, yv = Jm.At(1, 0), Jm.At(1, 1)
							det    = xu*yv - xv*yu
						)
						if math.Abs(det) < utils.NODETOL {
							return K, f, J, fmt.Errorf(
								"patch %d is degenerate at (%v,%v)", np, u, v)
						}
						loc, val, du, dv := tb.Active(u, v)
						var (
							scale        = wtU * wtV * math.Abs(det)
							wVal, wx, wy float64
						)
						for k, l := range loc {
							gx[k] = (yv*du[k] - yu*dv[k]) / det
							gy[k] = (xu*dv[k] - xv*du[k]) / det
							c := w[np].AtVec(l)
							wVal += c * val[k]
							wx += c * gx[k]
							wy += c * gy[k]
						}
						var (
							q2     = pl.Epsilon*pl.Epsilon + wx*wx + wy*wy
							weight = math.Pow(q2, 0.5*(pl.P-2))
							x, y   = patch.Eval(u, v)
							fv     = pl.Case.Source(pl.Epsilon, pl.P, x, y)
						)
						J += (math.Pow(q2, 0.5*pl.P)/pl.P - fv*wVal) * scale
						for k, lk := range loc {
							f.SetVec(row0+lk, f.AtVec(row0+lk)+fv*val[k]*scale)
							for m, lm := range loc {
								dok.Accumulate(row0+lk, row0+lm,
									weight*(gx[k]*gx[m]+gy[k]*gy[m])*scale)
							}
						}
					}
				}
			}
		}
	}
	K = dok.ToCSR()
	return
}
