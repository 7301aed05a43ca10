// Package engine invokes the external MiniZinc toolchain: backend selection,
// process execution under a wall-clock budget, and extraction of decision
// variable bindings from the solver output.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Request is one solver invocation: the configured model text, the typed
// instance data, and the search budget.
type Request struct {
	ModelText    string
	Data         map[string]any
	Solver       string
	TimeLimit    time.Duration // <= 0 means unbounded
	MaxSolutions int
}

// Engine is the narrow capability the orchestrator depends on: submit a
// model plus data, get back bindings, ErrInfeasible, or an *Error.
type Engine interface {
	Solve(ctx context.Context, req Request) (Bindings, error)
}

// MiniZinc runs solves through the minizinc binary. Each invocation is an
// independent process; instances share nothing but the registry probe.
type MiniZinc struct {
	bin      string
	registry *Registry
}

func NewMiniZinc(bin string, registry *Registry) *MiniZinc {
	return &MiniZinc{bin: bin, registry: registry}
}

// Final status markers emitted by minizinc after the last solution block.
const (
	solnSep         = "----------"
	statusComplete  = "=========="
	statusUnsat     = "=====UNSATISFIABLE====="
	statusUnknown   = "=====UNKNOWN====="
	statusUnbounded = "=====UNBOUNDED====="
	statusError     = "=====ERROR====="
)

// Solve materializes the model and data into a request-scoped temp directory
// (removed on every exit path), runs the selected backend, and parses the
// final reported solution. The context bounds the process: cancellation
// kills it rather than leaking it.
func (m *MiniZinc) Solve(ctx context.Context, req Request) (Bindings, error) {
	tag, err := m.registry.Resolve(req.Solver)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "jobshop-solve-")
	if err != nil {
		return nil, &Error{Op: "setup", Msg: "create temp dir", Err: err}
	}
	defer os.RemoveAll(dir)

	modelPath := filepath.Join(dir, "model.mzn")
	if err := os.WriteFile(modelPath, []byte(req.ModelText), 0o600); err != nil {
		return nil, &Error{Op: "setup", Msg: "write model file", Err: err}
	}
	dataPath := filepath.Join(dir, "data.json")
	dataJSON, err := json.Marshal(req.Data)
	if err != nil {
		return nil, &Error{Op: "setup", Msg: "encode instance data", Err: err}
	}
	if err := os.WriteFile(dataPath, dataJSON, 0o600); err != nil {
		return nil, &Error{Op: "setup", Msg: "write data file", Err: err}
	}

	args := []string{"--solver", tag, "--output-mode", "json"}
	if req.TimeLimit > 0 {
		args = append(args, "--time-limit", strconv.FormatInt(req.TimeLimit.Milliseconds(), 10))
	}
	if req.MaxSolutions > 1 {
		// Best-effort cap. Optimization problems need -a before minizinc
		// reports more than the final solution; the last block is the one
		// consumed either way.
		args = append(args, "-a", "--num-solutions", strconv.Itoa(req.MaxSolutions))
	}
	args = append(args, modelPath, dataPath)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, m.bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	bindings, parseErr := parseOutput(stdout.String())

	switch {
	case runErr == nil:
		return bindings, parseErr
	case errors.Is(ctx.Err(), context.Canceled):
		return nil, ctx.Err()
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		// Budget exhausted at the orchestrator boundary. A solution that was
		// already reported still counts; otherwise this is a plain
		// no-solution-within-budget outcome.
		if parseErr == nil {
			return bindings, nil
		}
		return nil, fmt.Errorf("%w: wall-clock budget exceeded", ErrInfeasible)
	default:
		return nil, &Error{Op: "solve", Msg: firstLine(stderr.String()), Err: runErr}
	}
}

// parseOutput extracts the final solution block from minizinc stdout.
// Blocks are separated by the solution separator; the trailing status marker
// distinguishes infeasibility from a malformed contract.
func parseOutput(out string) (Bindings, error) {
	var last Bindings
	unsat := false

	for _, chunk := range strings.Split(out, solnSep) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if strings.Contains(chunk, statusUnsat) || strings.Contains(chunk, statusUnknown) ||
			strings.Contains(chunk, statusUnbounded) {
			unsat = true
		}
		if strings.Contains(chunk, statusError) {
			return nil, &Error{Op: "solve", Msg: "solver reported an error"}
		}
		if b, ok := decodeBlock(chunk); ok {
			last = b
		}
	}

	if last != nil {
		return last, nil
	}
	if unsat {
		return nil, ErrInfeasible
	}
	return nil, &Error{Op: "result", Msg: "no solution block in solver output"}
}

// decodeBlock parses one inter-separator chunk as a JSON solution object,
// skipping comment lines and status markers around it.
func decodeBlock(chunk string) (Bindings, bool) {
	var payload []string
	for _, line := range strings.Split(chunk, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") || strings.HasPrefix(trimmed, "=") {
			continue
		}
		payload = append(payload, line)
	}
	if len(payload) == 0 {
		return nil, false
	}
	var b Bindings
	if err := json.Unmarshal([]byte(strings.Join(payload, "\n")), &b); err != nil {
		return nil, false
	}
	return b, true
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "solver process failed"
	}
	return s
}
