package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/jcastellanos/jobshopd/pkg/models"
)

// backendTags maps the supported solver identifiers to the MiniZinc solver
// tags they invoke. Identifiers outside this table are rejected during
// configuration validation, before any process is spawned.
var backendTags = map[string]string{
	models.SolverGecode:  "gecode",
	models.SolverChuffed: "chuffed",
	models.SolverORTools: "cp-sat",
}

// defaultOrder is the fallback sequence tried when the configured backend is
// not installed in the runtime environment.
var defaultOrder = []string{models.SolverGecode, models.SolverChuffed, models.SolverORTools}

const probeTimeout = 10 * time.Second

// Registry resolves backend identifiers to installed MiniZinc solver tags.
// Availability is probed once, lazily, via `minizinc --solvers-json`.
type Registry struct {
	bin string

	once      sync.Once
	installed map[string]bool
	probeErr  error
}

func NewRegistry(bin string) *Registry {
	return &Registry{bin: bin}
}

// Resolve returns the solver tag for the configured identifier, falling back
// through the default order when that backend is not installed. When no
// backend is usable it reports the missing-toolchain condition.
func (r *Registry) Resolve(solver string) (string, error) {
	r.once.Do(r.probe)
	if r.probeErr != nil {
		return "", r.probeErr
	}

	if tag := backendTags[solver]; r.installed[tag] {
		return tag, nil
	}
	for _, id := range defaultOrder {
		if tag := backendTags[id]; r.installed[tag] {
			return tag, nil
		}
	}
	return "", &Error{Op: "lookup", Msg: "no supported backend installed", Err: ErrToolchainMissing}
}

func (r *Registry) probe() {
	if _, err := exec.LookPath(r.bin); err != nil {
		r.probeErr = &Error{Op: "lookup", Msg: "binary not found", Err: ErrToolchainMissing}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, r.bin, "--solvers-json").Output()
	if err != nil {
		r.probeErr = &Error{Op: "probe", Msg: "listing solvers failed", Err: err}
		return
	}

	var entries []struct {
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal(out, &entries); err != nil {
		r.probeErr = &Error{Op: "probe", Msg: "malformed solver listing", Err: err}
		return
	}

	r.installed = make(map[string]bool)
	for _, e := range entries {
		for _, tag := range e.Tags {
			r.installed[tag] = true
		}
	}
}

// Ping reports whether the toolchain is usable, for health checks.
func (r *Registry) Ping() error {
	_, err := r.Resolve(models.SolverGecode)
	if err != nil {
		return fmt.Errorf("solver toolchain: %w", err)
	}
	return nil
}
