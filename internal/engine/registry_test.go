package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastellanos/jobshopd/pkg/models"
)

// probed returns a registry whose availability probe already ran with the
// given installed tags.
func probed(tags ...string) *Registry {
	r := &Registry{installed: map[string]bool{}}
	for _, tag := range tags {
		r.installed[tag] = true
	}
	r.once.Do(func() {})
	return r
}

func TestResolve_ConfiguredBackend(t *testing.T) {
	tag, err := probed("gecode", "chuffed").Resolve(models.SolverChuffed)
	require.NoError(t, err)
	assert.Equal(t, "chuffed", tag)
}

func TestResolve_ORToolsTag(t *testing.T) {
	tag, err := probed("cp-sat").Resolve(models.SolverORTools)
	require.NoError(t, err)
	assert.Equal(t, "cp-sat", tag)
}

func TestResolve_FallsBackThroughDefaultOrder(t *testing.T) {
	// Configured backend not installed: the default order applies.
	tag, err := probed("chuffed").Resolve(models.SolverGecode)
	require.NoError(t, err)
	assert.Equal(t, "chuffed", tag)
}

func TestResolve_NoBackendInstalled(t *testing.T) {
	_, err := probed().Resolve(models.SolverGecode)
	require.ErrorIs(t, err, ErrToolchainMissing)
}

func TestResolve_ProbeFailureSurfaces(t *testing.T) {
	r := &Registry{probeErr: &Error{Op: "lookup", Msg: "binary not found", Err: ErrToolchainMissing}}
	r.once.Do(func() {})

	_, err := r.Resolve(models.SolverGecode)
	require.ErrorIs(t, err, ErrToolchainMissing)
}
