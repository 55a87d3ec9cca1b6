//go:build !linux
// +build !linux

package cmd

import "fmt"

// runPerf on platforms without perf_event support runs fn uncounted
func runPerf(enabled bool, fn func()) {
	if enabled {
		fmt.Println("perf counters need linux, running uncounted")
	}
	fn()
}
