package PLaplace2D

import (
	"fmt"
	"math"

	"github.com/notargets/goiga/spline1D"
)

// ErrorNorms integrates the L2 and full H1 distance between the solution
// fields in WLoc and the exact solution of the model case, with one Gauss
// point over the assembly rule
func (pl *PLaplace) ErrorNorms() (eL2, eH1 float64, err error) {
	if pl.WLoc == nil {
		return 0, 0, fmt.Errorf("no solution fields, run Iterate")
	}
	var l2, h1 float64
	for np, patch := range pl.MP.Patches {
		var (
			tb = patch.Basis
			qu = spline1D.NewElementQuadrature(tb.U, pl.NQ+1)
			qv = spline1D.NewElementQuadrature(tb.V, pl.NQ+1)
		)
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
							scale  = wtU * wtV * math.Abs(det)
						)
						wVal, wdu, wdv := tb.EvalFieldGrad(pl.WLoc[np], u, v)
						var (
							wx       = (yv*wdu - yu*wdv) / det
							wy       = (xu*wdv - xv*wdu) / det
							x, y     = patch.Eval(u, v)
							ex       = wVal - pl.Case.Exact(x, y)
							gxE, gyE = pl.Case.Grad(x, y)
							dx, dy   = wx - gxE, wy - gyE
						)
						l2 += ex * ex * scale
						h1 += (dx*dx + dy*dy) * scale
					}
				}
			}
		}
	}
	eL2 = math.Sqrt(l2)
	eH1 = math.Sqrt(l2 + h1)
	return
}
