package IGA2D

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFinalized is returned by operations that need the assembled
	// transformation, called before Finalize
	ErrNotFinalized = errors.New("system has not been finalized")
	// ErrFinalized is returned by insertion operations called after Finalize
	ErrFinalized = errors.New("system has already been finalized")
)

// ConfigurationError reports a geometry or policy setup the consolidation
// cannot handle
type ConfigurationError struct {
	Op     string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

func configErrorf(op, format string, args ...interface{}) error {
	return &ConfigurationError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// IndexRangeError reports an entity or function index outside the range the
// offset tables allocated for it
type IndexRangeError struct {
	Kind  string // "interface", "boundary", "vertex", "function"
	ID    int
	Index int
	Limit int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("%s %d: index %d out of range [0,%d)",
		e.Kind, e.ID, e.Index, e.Limit)
}

// SolverFailure wraps an iterative solver breakdown with the system context
type SolverFailure struct {
	Solver string
	Err    error
}

func (e *SolverFailure) Error() string {
	return fmt.Sprintf("solver %s failed: %v", e.Solver, e.Err)
}

func (e *SolverFailure) Unwrap() error { return e.Err }
