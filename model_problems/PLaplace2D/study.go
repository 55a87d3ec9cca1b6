package PLaplace2D

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/notargets/goiga/spline1D"
	"github.com/notargets/goiga/utils"
)

// LevelResult is one row of a refinement study
type LevelResult struct {
	Level      int
	H          float64
	Iterations int
	Residual   float64
	EL2, EH1   float64
	RateL2     float64
	RateH1     float64
	Seconds    float64
}

/*
RunStudy solves the problem on levels uniform refinements of the current
domain, halving the knot spans each level. The solution of a level rides the
refinement transfer into the next as the weight seed of the starting fixed
point step, so the finer solves begin near the attractor. Rates compare the
error drop of successive levels against the mesh width ratio
*/
func (pl *PLaplace) RunStudy(levels int) (results []LevelResult, err error) {
	if levels < 1 {
		return nil, fmt.Errorf("study needs at least one level, got %d",
			levels)
	}
	for lvl := 0; lvl < levels; lvl++ {
		if lvl > 0 {
			fine, T, eR := pl.MP.RefineUniform()
			if eR != nil {
				return results, eR
			}
			for np := range pl.WLoc {
				pl.WLoc[np] = T[np].MulVec(pl.WLoc[np])
			}
			pl.seed = pl.WLoc
			pl.MP = fine
		}
		fmt.Printf("level %d: h = %v, %s\n",
			lvl, pl.MeshWidth(), utils.GetMemUsage())
		start := time.Now()
		if err = pl.Setup(); err != nil {
			return
		}
		iters, resid, eI := pl.Iterate()
		if eI != nil {
			return results, eI
		}
		eL2, eH1, eN := pl.ErrorNorms()
		if eN != nil {
			return results, eN
		}
		results = append(results, LevelResult{
			Level:      lvl,
			H:          pl.MeshWidth(),
			Iterations: iters,
			Residual:   resid,
			EL2:        eL2,
			EH1:        eH1,
			Seconds:    time.Since(start).Seconds(),
		})
	}
	finishRates(results)
	return
}

func finishRates(results []LevelResult) {
	for i := 1; i < len(results); i++ {
		hr := results[i-1].H / results[i].H
		results[i].RateL2 = math.Log(results[i-1].EL2/results[i].EL2) /
			math.Log(hr)
		results[i].RateH1 = math.Log(results[i-1].EH1/results[i].EH1) /
			math.Log(hr)
	}
}

// MeshWidth is the widest knot span over the domain
func (pl *PLaplace) MeshWidth() (h float64) {
	for _, patch := range pl.MP.Patches {
		for _, kv := range []spline1D.KnotVector{patch.Basis.U, patch.Basis.V} {
			b := kv.Breaks()
			for i := 1; i < len(b); i++ {
				if s := b[i] - b[i-1]; s > h {
					h = s
				}
			}
		}
	}
	return
}

// PrintTable writes the study results as an aligned table
func PrintTable(results []LevelResult) {
	fmt.Printf("%5s %10s %6s %12s %12s %6s %12s %6s %8s\n",
		"level", "h", "iters", "resid", "eL2", "rL2", "eH1", "rH1", "secs")
	for _, lr := range results {
		fmt.Printf("%5d %10.4e %6d %12.4e %12.4e %6.2f %12.4e %6.2f %8.3f\n",
			lr.Level, lr.H, lr.Iterations, lr.Residual,
			lr.EL2, lr.RateL2, lr.EH1, lr.RateH1, lr.Seconds)
	}
}

// WriteCSV writes the study rows under a title key, in the layout the
// convRates tool reads back
func WriteCSV(w io.Writer, title string, results []LevelResult) error {
	cw := csv.NewWriter(w)
	header := []string{"title", "level", "h", "iterations", "residual",
		"eL2", "rateL2", "eH1", "rateH1", "seconds"}
	if err := cw.Write(header); err != nil {
		return err
	}
	ff := func(v float64) string {
		return strconv.FormatFloat(v, 'e', 8, 64)
	}
	for _, lr := range results {
		rec := []string{
			title,
			strconv.Itoa(lr.Level),
			ff(lr.H),
			strconv.Itoa(lr.Iterations),
			ff(lr.Residual),
			ff(lr.EL2),
			ff(lr.RateL2),
			ff(lr.EH1),
			ff(lr.RateH1),
			ff(lr.Seconds),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
