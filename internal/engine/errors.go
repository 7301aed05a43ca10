package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasible means the engine completed without finding a feasible
	// solution within budget. A normal outcome, not a fault.
	ErrInfeasible = errors.New("no feasible solution within budget")

	// ErrToolchainMissing means no usable constraint solver backend is
	// available in the runtime environment.
	ErrToolchainMissing = errors.New("minizinc toolchain not available; ensure MiniZinc is installed and on PATH")
)

// Error reports a process-level engine failure or an output-contract
// violation (missing or mis-shaped result variables).
type Error struct {
	Op  string
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("engine %s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }
