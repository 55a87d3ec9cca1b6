package utils

import "fmt"

type Index []int

func NewIndex(N int, ItO ...[]int) (I Index) {
	I = make(Index, N)
	if len(ItO) != 0 {
		for i, val := range ItO[0] {
			I[i] = val
		}
	}
	return
}

// NewRange produces an index from rmin to rmax, inclusive.
func NewRange(rmin, rmax int) (I Index) {
	var (
		size = rmax - rmin + 1
	)
	if size <= 0 {
		err := fmt.Errorf("unable to create index with bounds rmin, rmax = %v, %v\n", rmin, rmax)
		panic(err)
	}
	I = make(Index, size)
	for i := range I {
		I[i] = i + rmin
	}
	return
}

// NewRangeOffset is the same as NewRange, with bounds offset from a
// one-based to a zero-based index.
func NewRangeOffset(rmin, rmax int) (I Index) {
	return NewRange(rmin-1, rmax-1)
}

func (I Index) Add(val int) (R Index) { // Does not change receiver
	R = make(Index, len(I))
	for i, ival := range I {
		R[i] = ival + val
	}
	return
}

// Last returns the final value of the index, or 0 when empty. Offset
// tables use this to chain one numbering block after another.
func (I Index) Last() int {
	if len(I) == 0 {
		return 0
	}
	return I[len(I)-1]
}

func (I Index) Contains(val int) bool {
	for _, ival := range I {
		if ival == val {
			return true
		}
	}
	return false
}
