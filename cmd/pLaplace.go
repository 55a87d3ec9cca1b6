/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/notargets/goiga/IGA2D"
	"github.com/notargets/goiga/InputParameters"
	"github.com/notargets/goiga/model_problems/PLaplace2D"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type ModelPLaplace struct {
	ICFile     string
	Graph      bool
	Delay      time.Duration
	Resolution int
	CSVFile    string
	Profile    bool
	Perf       bool
}

// PLaplaceCmd represents the pLaplace command
var PLaplaceCmd = &cobra.Command{
	Use:   "pLaplace",
	Short: "p-Laplace solver on consolidated multi patch spline spaces",
	Long: `Solves the regularized p-Laplace problem on a grid of unit square
spline patches joined with first order smoothness, using a manufactured
solution for the boundary data and the error report. Each refinement level
reuses the previous solution as the starting guess and the run ends with a
convergence table over the levels.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("pLaplace called")
		mpl := &ModelPLaplace{}
		if mpl.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		mpl.Graph, _ = cmd.Flags().GetBool("graph")
		mpl.Resolution, _ = cmd.Flags().GetInt("resolution")
		dr, _ := cmd.Flags().GetInt("delay")
		mpl.Delay = time.Duration(time.Duration(dr) * time.Millisecond)
		mpl.CSVFile, _ = cmd.Flags().GetString("csvFile")
		mpl.Profile, _ = cmd.Flags().GetBool("profile")
		mpl.Perf, _ = cmd.Flags().GetBool("perf")
		ip := processInput(mpl)
		RunPLaplace(mpl, ip)
	},
}

func processInput(mpl *ModelPLaplace) (ip *InputParameters.ModelParameters) {
	var (
		err error
	)
	if len(mpl.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Two Patch Poisson"
Case: quadratic # Can be "affine", "sinewave", "doublesine"
P: 2.
Epsilon: 0.01
PolynomialOrder: 2
Regularity: 0
ElementCount: 2
GridNX: 2
GridNY: 1
Levels: 3
MaxIterations: 100
Tolerance: 1.e-10
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mpl.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.ModelParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(PLaplaceCmd)
	PLaplaceCmd.Flags().StringP("inputConditionsFile", "I", "",
		"YAML file for input parameters like:\n\t- P (exponent)\n\t- Case (manufactured solution)")
	PLaplaceCmd.Flags().BoolP("graph", "g", false, "display the solution after the last level")
	PLaplaceCmd.Flags().IntP("delay", "d", 0, "milliseconds to hold the plot, 0 blocks forever")
	PLaplaceCmd.Flags().IntP("resolution", "R", 33, "sample points per patch direction for plotting")
	PLaplaceCmd.Flags().StringP("csvFile", "c", "", "write the per level convergence history to this CSV file")
	PLaplaceCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
	PLaplaceCmd.Flags().Bool("perf", false, "report hardware instruction counts for the run (linux)")
}

func RunPLaplace(mpl *ModelPLaplace, ip *InputParameters.ModelParameters) {
	if mpl.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	ip.Print()
	mc, err := PLaplace2D.NewModelCase(ip.Case)
	if err != nil {
		panic(err)
	}
	var (
		degree = ip.PolynomialOrder
		elems  = ip.ElementCount
		nx, ny = ip.GridNX, ip.GridNY
		levels = ip.Levels
	)
	if degree == 0 {
		degree = 2
	}
	if elems == 0 {
		elems = 2
	}
	if nx == 0 {
		nx = 2
	}
	if ny == 0 {
		ny = 1
	}
	if levels == 0 {
		levels = 1
	}
	mp, err := IGA2D.NewSquareGrid(degree, elems, ip.Regularity, nx, ny)
	if err != nil {
		panic(err)
	}
	pl, err := PLaplace2D.NewPLaplace(mp, mc, ip)
	if err != nil {
		panic(err)
	}
	var results []PLaplace2D.LevelResult
	runPerf(mpl.Perf, func() {
		var rerr error
		if results, rerr = pl.RunStudy(levels); rerr != nil {
			panic(rerr)
		}
	})
	PLaplace2D.PrintTable(results)
	if len(mpl.CSVFile) != 0 {
		writeHistory(mpl.CSVFile, ip.Title, results)
	}
	if mpl.Graph {
		pm := InputParameters.PlotMeta{
			Plot:       true,
			FieldMinP:  nil,
			FieldMaxP:  nil,
			FrameTime:  mpl.Delay,
			Resolution: mpl.Resolution,
		}
		if err = pl.PlotSolution(pm); err != nil {
			panic(err)
		}
	}
}

func writeHistory(fileName, title string, results []PLaplace2D.LevelResult) {
	f, err := os.Create(fileName)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if len(title) == 0 {
		title = "pLaplace"
	}
	if err = PLaplace2D.WriteCSV(f, title, results); err != nil {
		panic(err)
	}
	fmt.Printf("wrote convergence history to %s\n", fileName)
}
