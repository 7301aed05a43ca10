package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() SolverConfig {
	return SolverConfig{
		ProblemType:     ProblemTardiness,
		Solver:          SolverChuffed,
		SearchHeuristic: "first_fail",
		ValueChoice:     "indomain_min",
		TimeLimitSec:    30,
		MaxSolutions:    1,
	}
}

func TestSolverConfig_Valid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestSolverConfig_UnboundedTimeLimit(t *testing.T) {
	cfg := validConfig()
	cfg.TimeLimitSec = 0
	require.NoError(t, cfg.Validate())
}

func TestSolverConfig_Invalid(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*SolverConfig)
		wantField string
	}{
		{"unknown variant", func(c *SolverConfig) { c.ProblemType = "flowshop" }, "solverConfig.problemType"},
		{"unknown solver", func(c *SolverConfig) { c.Solver = "cplex" }, "solverConfig.solver"},
		{"unknown heuristic", func(c *SolverConfig) { c.SearchHeuristic = "deepest" }, "solverConfig.searchHeuristic"},
		{"unknown value choice", func(c *SolverConfig) { c.ValueChoice = "indomain_best" }, "solverConfig.valueChoice"},
		{"negative time limit", func(c *SolverConfig) { c.TimeLimitSec = -1 }, "solverConfig.timeLimitSec"},
		{"zero max solutions", func(c *SolverConfig) { c.MaxSolutions = 0 }, "solverConfig.maxSolutions"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tc.wantField, valErr.Field)
		})
	}
}
