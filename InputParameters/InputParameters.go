package InputParameters

import (
	"fmt"
	"sort"
	"time"

	"github.com/ghodss/yaml"

	"github.com/notargets/goiga/types"
)

// Parameters obtained from the YAML input file
type ModelParameters struct {
	Title           string                                `yaml:"Title"`
	P               float64                               `yaml:"P"`       // p-Laplace exponent, 2 is Poisson
	Epsilon         float64                               `yaml:"Epsilon"` // regularization of the nonlinear weight
	PolynomialOrder int                                   `yaml:"PolynomialOrder"`
	Regularity      int                                   `yaml:"Regularity"`
	ElementCount    int                                   `yaml:"ElementCount"` // elements per direction on the coarse level
	GridNX          int                                   `yaml:"GridNX"`       // patches per direction
	GridNY          int                                   `yaml:"GridNY"`
	Levels          int                                   `yaml:"Levels"` // refinement levels
	MaxIterations   int                                   `yaml:"MaxIterations"`
	Tolerance       float64                               `yaml:"Tolerance"`
	Case            string                                `yaml:"Case"` // manufactured solution name
	BCs             map[string]map[int]map[string]float64 `yaml:"BCs"`  // First key is BC name/type, second is the boundary side
}

func (mp *ModelParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, mp)
}

func (mp *ModelParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", mp.Title)
	fmt.Printf("%8.5f\t\t= P\n", mp.P)
	fmt.Printf("%8.5f\t\t= Epsilon\n", mp.Epsilon)
	fmt.Printf("%8.5f\t\t= Tolerance\n", mp.Tolerance)
	fmt.Printf("[%s]\t\t\t= Case\n", mp.Case)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", mp.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t\t= Regularity\n", mp.Regularity)
	fmt.Printf("[%d]\t\t\t\t= Elements per Direction\n", mp.ElementCount)
	fmt.Printf("[%dx%d]\t\t\t= Patch Grid\n", mp.GridNX, mp.GridNY)
	fmt.Printf("[%d]\t\t\t\t= Refinement Levels\n", mp.Levels)
	fmt.Printf("[%d]\t\t\t\t= Max Iterations\n", mp.MaxIterations)
	keys := make([]string, len(mp.BCs))
	i := 0
	for k := range mp.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, mp.BCs[key])
	}
}

// BCFlags resolves the BC map keys to typed condition flags, rejecting
// names the solver does not know
func (mp *ModelParameters) BCFlags() (flags []types.BCFLAG, err error) {
	keys := make([]string, len(mp.BCs))
	i := 0
	for k := range mp.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		bf := types.NewBCTAG(key).GetFLAG()
		if bf == types.BC_None {
			err = fmt.Errorf("unknown boundary condition type %q", key)
			return
		}
		flags = append(flags, bf)
	}
	return
}

// Neumann reports whether any configured boundary condition is of Neumann
// type, which switches the consolidation to the Neumann counting rules
func (mp *ModelParameters) Neumann() (neumann bool, err error) {
	flags, err := mp.BCFlags()
	if err != nil {
		return
	}
	for _, bf := range flags {
		if bf == types.BC_Neumann {
			neumann = true
		}
	}
	return
}

// PlotMeta holds the plotting controls the drivers pass through to the
// graphics server
type PlotMeta struct {
	Plot       bool
	FieldMinP  *float64
	FieldMaxP  *float64
	FrameTime  time.Duration
	Resolution int // sample points per patch direction
}
