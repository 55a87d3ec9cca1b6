package types

import (
	"strings"
)

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Dirichlet
	BC_Neumann
)

var BCNameMap = map[string]BCFLAG{
	"dirichlet": BC_Dirichlet,
	"neumann":   BC_Neumann,
	"neuman":    BC_Neumann,
}

func (bf BCFLAG) String() string {
	switch bf {
	case BC_Dirichlet:
		return "Dirichlet"
	case BC_Neumann:
		return "Neumann"
	default:
		return "None"
	}
}

/*
A BCTAG labels a boundary side with a condition type and an optional
user label, for example "Dirichlet-left" or "Neumann-2". The tag is
normalized to lowercase so configuration files are case insensitive.
*/
type BCTAG string

func NewBCTAG(label string) (bt BCTAG) {
	bt = BCTAG(strings.ToLower(strings.TrimSpace(label)))
	return
}

func (bt BCTAG) GetFLAG() (bf BCFLAG) {
	var (
		base = string(bt)
	)
	if ind := strings.Index(base, "-"); ind != -1 {
		base = base[:ind]
	}
	bf = BCNameMap[base]
	return
}

func (bt BCTAG) GetLabel() (label string) {
	var (
		base = string(bt)
	)
	if ind := strings.Index(base, "-"); ind != -1 {
		label = base[ind+1:]
	}
	return
}
