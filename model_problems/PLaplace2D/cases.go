package PLaplace2D

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

/*
ModelCase is a manufactured solution of the regularized p-Laplace problem

	-div((eps^2 + |grad u|^2)^((p-2)/2) grad u) = f

with Dirichlet data read off the exact solution. The sources follow the
regularized operator, not the plain p-Laplacian, so the discrete solution
converges to Exact for every p > 1 and every eps > 0. At p = 2 each source
reduces to the Poisson right hand side -lap(u)
*/
type ModelCase struct {
	Name string
	// ZeroTrace marks solutions that vanish on boundaries lying on integer
	// grid lines, usable with homogeneous boundary data
	ZeroTrace bool
	Exact     func(x, y float64) float64
	Grad      func(x, y float64) (ux, uy float64)
	Source    func(eps, p, x, y float64) float64
}

// sineGamma is the wave number of the sinewave case
const sineGamma = 2

var modelCases = map[string]ModelCase{
	"affine": {
		Name: "affine",
		Exact: func(x, y float64) float64 {
			return 1 + 2*x - 3*y
		},
		Grad: func(x, y float64) (ux, uy float64) {
			return 2, -3
		},
		Source: func(eps, p, x, y float64) float64 {
			return 0
		},
	},
	"quadratic": {
		Name: "quadratic",
		Exact: func(x, y float64) float64 {
			return x*x + y*y
		},
		Grad: func(x, y float64) (ux, uy float64) {
			return 2 * x, 2 * y
		},
		Source: func(eps, p, x, y float64) float64 {
			q := eps*eps + 4*x*x + 4*y*y
			return -4*math.Pow(q, 0.5*p-1) -
				8*(p-2)*math.Pow(q, 0.5*p-2)*(x*x+y*y)
		},
	},
	"sinewave": {
		Name: "sinewave",
		Exact: func(x, y float64) float64 {
			return math.Sin(sineGamma * math.Pi * (x + y))
		},
		Grad: func(x, y float64) (ux, uy float64) {
			c := sineGamma * math.Pi * math.Cos(sineGamma*math.Pi*(x+y))
			return c, c
		},
		Source: func(eps, p, x, y float64) float64 {
			var (
				gp = sineGamma * math.Pi
				c  = math.Cos(gp * (x + y))
				s  = math.Sin(gp * (x + y))
				q  = eps*eps + 2*gp*gp*c*c
			)
			return 2 * gp * gp * math.Pow(q, 0.5*(p-4)) *
				(eps*eps + 2*gp*gp*(p-1)*c*c) * s
		},
	},
	"doublesine": {
		Name:      "doublesine",
		ZeroTrace: true,
		Exact: func(x, y float64) float64 {
			return math.Sin(2*math.Pi*x) * math.Sin(2*math.Pi*y)
		},
		Grad: func(x, y float64) (ux, uy float64) {
			ux = 2 * math.Pi * math.Cos(2*math.Pi*x) * math.Sin(2*math.Pi*y)
			uy = 2 * math.Pi * math.Sin(2*math.Pi*x) * math.Cos(2*math.Pi*y)
			return
		},
		Source: func(eps, p, x, y float64) float64 {
			var (
				pi2 = math.Pi * math.Pi
				a   = eps*eps + 2*pi2 + pi2*(-(p-2)*math.Cos(4*math.Pi*y)-
					math.Cos(4*math.Pi*x)*((p-2)+2*(p-1)*math.Cos(4*math.Pi*y)))
				// b is eps^2 + |grad u|^2
				b = eps*eps + 2*pi2 -
					pi2*(math.Cos(4*math.Pi*(x-y))+math.Cos(4*math.Pi*(x+y)))
			)
			return 8 * pi2 * a * math.Pow(b, 0.5*(p-4)) *
				math.Sin(2*math.Pi*x) * math.Sin(2*math.Pi*y)
		},
	},
}

// NewModelCase looks a manufactured case up by name, case insensitive
func NewModelCase(name string) (mc ModelCase, err error) {
	mc, ok := modelCases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		err = fmt.Errorf("unknown model case %q, have %s",
			name, strings.Join(CaseNames(), ", "))
	}
	return
}

// CaseNames lists the manufactured cases in sorted order
func CaseNames() (names []string) {
	for name := range modelCases {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
