//go:build linux
// +build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// runPerf wraps fn with a hardware instruction counter when enabled. Counter
// access needs perf_event permissions, without them the run proceeds uncounted
func runPerf(enabled bool, fn func()) {
	if !enabled {
		fn()
		return
	}
	pv, err := perf.CPUInstructions(fn)
	if err != nil {
		fmt.Printf("perf counters unavailable: %v\n", err)
		fn()
		return
	}
	fmt.Printf("instructions retired: %d, counter ran %d of %d ns\n",
		pv.Value, pv.TimeRunning, pv.TimeEnabled)
}
