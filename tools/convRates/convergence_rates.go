package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var (
	csvFile  string
	plotFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study")
	plotFilePtr := flag.String("plotFile", plotFile, "optional output image with log-log error curves")
	flag.Parse()
	csvFile = *csvFilePtr
	plotFile = *plotFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies := readCSV(csvFile)
	titles := make([]string, 0, len(studies))
	for title := range studies {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		studies[title].Print()
	}
	if len(plotFile) != 0 {
		writePlot(plotFile, studies, titles)
	}
}

type ConvergenceStudy struct {
	title      string
	levels     []int
	h          []float64
	iterations []int
	residual   []float64
	eL2, eH1   []float64
	seconds    []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{title: title}
}

func (cs *ConvergenceStudy) Add(level, iterations int, h, residual, eL2, eH1, seconds float64) {
	cs.levels = append(cs.levels, level)
	cs.h = append(cs.h, h)
	cs.iterations = append(cs.iterations, iterations)
	cs.residual = append(cs.residual, residual)
	cs.eL2 = append(cs.eL2, eL2)
	cs.eH1 = append(cs.eH1, eH1)
	cs.seconds = append(cs.seconds, seconds)
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Title = %s\n", cs.title)
	for i := range cs.levels {
		rL2, rH1 := cs.Rates(i)
		fmt.Printf("%d, %v, %d, %v, %v, %5.2f, %v, %5.2f, %v\n",
			cs.levels[i], cs.h[i], cs.iterations[i], cs.residual[i],
			cs.eL2[i], rL2, cs.eH1[i], rH1, cs.seconds[i])
	}
	fmt.Printf("fitted order: L2 = %5.2f, H1 = %5.2f\n",
		fitOrder(cs.h, cs.eL2), fitOrder(cs.h, cs.eH1))
}

// Rates recomputes the observed orders between levels i-1 and i
func (cs *ConvergenceStudy) Rates(i int) (rL2, rH1 float64) {
	if i == 0 {
		return
	}
	dh := math.Log(cs.h[i-1] / cs.h[i])
	if dh == 0 {
		return
	}
	if cs.eL2[i-1] > 0 && cs.eL2[i] > 0 {
		rL2 = math.Log(cs.eL2[i-1]/cs.eL2[i]) / dh
	}
	if cs.eH1[i-1] > 0 && cs.eH1[i] > 0 {
		rH1 = math.Log(cs.eH1[i-1]/cs.eH1[i]) / dh
	}
	return
}

// fitOrder is the least squares slope of log error against log h over the
// levels with positive entries
func fitOrder(h, e []float64) (slope float64) {
	var X, Y []float64
	for i := range h {
		if h[i] > 0 && e[i] > 0 {
			X = append(X, math.Log(h[i]))
			Y = append(Y, math.Log(e[i]))
		}
	}
	if len(X) < 2 {
		return
	}
	var xb, yb float64
	n := float64(len(X))
	for i := range X {
		xb += X[i]
		yb += Y[i]
	}
	xb /= n
	yb /= n
	var sxy, sxx float64
	for i := range X {
		sxy += (X[i] - xb) * (Y[i] - yb)
		sxx += (X[i] - xb) * (X[i] - xb)
	}
	if sxx != 0 {
		slope = sxy / sxx
	}
	return
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy) {
	var (
		records        [][]string
		err            error
		f              *os.File
		ok             bool
		cs             *ConvergenceStudy
		h, resid       float64
		eL2, eH1, secs float64
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		title := rec[0]
		level, _ := strconv.Atoi(rec[1])
		iters, _ := strconv.Atoi(rec[3])
		_, _ = fmt.Sscanf(rec[2], "%f", &h)
		_, _ = fmt.Sscanf(rec[4], "%f", &resid)
		_, _ = fmt.Sscanf(rec[5], "%f", &eL2)
		_, _ = fmt.Sscanf(rec[7], "%f", &eH1)
		_, _ = fmt.Sscanf(rec[9], "%f", &secs)
		if cs, ok = studies[title]; !ok {
			cs = NewConvergenceStudy(title)
			studies[title] = cs
		}
		cs.Add(level, iters, h, resid, eL2, eH1, secs)
	}
	return
}

func writePlot(fileName string, studies map[string]*ConvergenceStudy, titles []string) {
	p := plot.New()
	p.Title.Text = "Convergence of the consolidated solves"
	p.X.Label.Text = "h"
	p.Y.Label.Text = "error"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	var args []interface{}
	for _, title := range titles {
		cs := studies[title]
		if pts := logPoints(cs.h, cs.eL2); len(pts) > 1 {
			args = append(args, cs.title+" L2", pts)
		}
		if pts := logPoints(cs.h, cs.eH1); len(pts) > 1 {
			args = append(args, cs.title+" H1", pts)
		}
	}
	if len(args) == 0 {
		fmt.Println("no positive errors to plot")
		return
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		panic(err)
	}
	if err := p.Save(6*vg.Inch, 4.5*vg.Inch, fileName); err != nil {
		panic(err)
	}
	fmt.Printf("wrote error curves to %s\n", fileName)
}

// logPoints drops non positive entries, the log scales reject them
func logPoints(h, e []float64) (pts plotter.XYs) {
	for i := range h {
		if h[i] > 0 && e[i] > 0 {
			pts = append(pts, plotter.XY{X: h[i], Y: e[i]})
		}
	}
	return
}
