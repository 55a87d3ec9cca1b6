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

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"
	"github.com/notargets/goiga/IGA2D"
	"github.com/notargets/goiga/geometry2D"
	"github.com/notargets/goiga/utils"
	"github.com/spf13/cobra"
)

type ModelG1 struct {
	N, K, R        int
	NX, NY         int
	InnerKnotMulti int
	Neumann        bool
	General        bool
	Solve          bool
	Graph          bool
}

// G1Cmd represents the G1 command
var G1Cmd = &cobra.Command{
	Use:   "G1",
	Short: "Consolidate a patch grid and report the smooth system layout",
	Long: `Builds a grid of unit square spline patches, classifies its
topology under the selected rules and reports the per entity function
counts and the reduced system dimensions. Under the two patch rules the
smooth basis is generated and checked, optionally followed by an identity
weighted solve of the reduced system.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("G1 called")
		m := &ModelG1{}
		m.N, _ = cmd.Flags().GetInt("n")
		m.K, _ = cmd.Flags().GetInt("k")
		m.R, _ = cmd.Flags().GetInt("regularity")
		m.NX, _ = cmd.Flags().GetInt("nx")
		m.NY, _ = cmd.Flags().GetInt("ny")
		m.InnerKnotMulti, _ = cmd.Flags().GetInt("innerKnotMulti")
		m.Neumann, _ = cmd.Flags().GetBool("neumann")
		m.General, _ = cmd.Flags().GetBool("general")
		m.Solve, _ = cmd.Flags().GetBool("solve")
		m.Graph, _ = cmd.Flags().GetBool("graph")
		RunG1(m)
	},
}

func init() {
	rootCmd.AddCommand(G1Cmd)
	G1Cmd.Flags().IntP("n", "n", 2, "polynomial degree of the patch bases")
	G1Cmd.Flags().IntP("k", "k", 2, "number of knot spans per direction and patch")
	G1Cmd.Flags().IntP("regularity", "r", 0, "interior knot regularity of the patch bases")
	G1Cmd.Flags().IntP("nx", "x", 2, "patches along x")
	G1Cmd.Flags().IntP("ny", "y", 1, "patches along y")
	G1Cmd.Flags().Int("innerKnotMulti", 0, "raise interior knot multiplicity for the interface spaces")
	G1Cmd.Flags().Bool("neumann", false, "count under the Neumann rules, both trace rings prescribed")
	G1Cmd.Flags().Bool("general", false, "count under the general rules instead of the two patch rules")
	G1Cmd.Flags().BoolP("solve", "s", false, "run an identity weighted reduced solve as a smoke check")
	G1Cmd.Flags().BoolP("graph", "g", false, "display the patch layout")
}

func RunG1(m *ModelG1) {
	mp, err := IGA2D.NewSquareGrid(m.N, m.K, m.R, m.NX, m.NY)
	if err != nil {
		panic(err)
	}
	policy := IGA2D.TopologyPolicy{
		TwoPatch:       !m.General,
		Neumann:        m.Neumann,
		InnerKnotMulti: m.InnerKnotMulti,
	}
	sys, err := IGA2D.NewG1System(mp, policy)
	if err != nil {
		panic(err)
	}
	printTopology(sys)
	if !m.General {
		if err = IGA2D.PopulateAffineG1System(sys); err != nil {
			panic(err)
		}
		if err = sys.Finalize(utils.Vector{}); err != nil {
			panic(err)
		}
		D, err := sys.Transformation()
		if err != nil {
			panic(err)
		}
		empty, err := sys.EmptyCategoryRows()
		if err != nil {
			panic(err)
		}
		covered := make([]bool, sys.DimK())
		D.DoNonZero(func(i, j int, v float64) {
			covered[j] = true
		})
		var nCov int
		for _, c := range covered {
			if c {
				nCov++
			}
		}
		fmt.Printf("transformation: %d nonzeros, %d empty rows, %d of %d"+
			" coefficients covered\n", D.Nnz(), len(empty), nCov, sys.DimK())
		if m.Solve {
			smokeSolve(sys)
		}
	}
	if m.Graph {
		plotGrid(mp)
	}
}

func printTopology(sys *IGA2D.G1System) {
	var (
		topo  = sys.Topo
		rules = "two patch"
	)
	if !topo.Policy.TwoPatch {
		rules = "general"
	}
	if topo.Policy.Neumann {
		rules += ", Neumann"
	}
	fmt.Printf("rules: %s\n", rules)
	for i, it := range topo.Interfaces {
		fmt.Printf("interface %d: p=%d r=%d n=%d, %d functions, kinks %v\n",
			i, it.P, it.R, it.N, it.NumFunctions, it.Kink)
	}
	for i, bt := range topo.Boundaries {
		fmt.Printf("boundary %d: %d free, %d prescribed\n",
			i, bt.NumEdge, bt.NumBdy)
	}
	for i, vt := range topo.Vertices {
		fmt.Printf("vertex %d: %s, %d free, %d prescribed\n",
			i, vt.Kind, vt.NumDofs, vt.NumBdy)
	}
	fmt.Printf("dims: K=%d, free=%d, prescribed=%d, total=%d\n",
		sys.DimK(), sys.DimG1Dofs(), sys.DimG1Bdy(), sys.Total())
}

// smokeSolve runs the reduced solve with the identity as the patch local
// operator, a quick conditioning check of the consolidation
func smokeSolve(sys *IGA2D.G1System) {
	var (
		solver = IGA2D.CGDiagonal{}
		f      = utils.NewVectorConstant(sys.DimK(), 1)
	)
	x, err := sys.Solve(identityOperator(sys.DimK()), f, solver)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s solved the identity weighted system, |x| = %8.4f\n",
		solver.Name(), x.Norm())
}

func identityOperator(n int) utils.CSR {
	dok := utils.NewDOK(n, n)
	for i := 0; i < n; i++ {
		dok.Set(i, i, 1)
	}
	return dok.ToCSR()
}

// plotGrid renders the patch layout as a merged lattice mesh
func plotGrid(mp *IGA2D.MultiPatch) {
	const res = 11
	var meshes []geometry.TriMesh
	for _, patch := range mp.Patches {
		var (
			tb     = patch.Basis
			u0, u1 = tb.U.T[0], tb.U.T[len(tb.U.T)-1]
			v0, v1 = tb.V.T[0], tb.V.T[len(tb.V.T)-1]
			X, Y   []float64
		)
		for j := 0; j < res; j++ {
			v := v0 + (v1-v0)*float64(j)/float64(res-1)
			for i := 0; i < res; i++ {
				u := u0 + (u1-u0)*float64(i)/float64(res-1)
				x, y := patch.Eval(u, v)
				X = append(X, x)
				Y = append(Y, y)
			}
		}
		gm, err := geometry2D.StructuredMesh(X, Y, res, res)
		if err != nil {
			panic(err)
		}
		meshes = append(meshes, gm)
	}
	gm := geometry2D.MergeMeshes(meshes...)
	xMin, xMax, yMin, yMax := geometry2D.Bounds(gm.XY)
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	ch.AddTriMesh(gm)
	for {
	}
}
