package models

// Problem variants.
const (
	ProblemTardiness   = "tardanza_ponderada"
	ProblemMaintenance = "jssp_maint"
)

// Backend solver identifiers accepted in SolverConfig.Solver.
const (
	SolverGecode  = "gecode"
	SolverChuffed = "chuffed"
	SolverORTools = "or-tools"
)

var validProblemTypes = map[string]bool{
	ProblemTardiness:   true,
	ProblemMaintenance: true,
}

var validSolvers = map[string]bool{
	SolverGecode:  true,
	SolverChuffed: true,
	SolverORTools: true,
}

var validHeuristics = map[string]bool{
	"input_order": true,
	"first_fail":  true,
	"smallest":    true,
	"largest":     true,
	"dom_w_deg":   true,
	"impact":      true,
	"activity":    true,
}

var validValueChoices = map[string]bool{
	"indomain_min":    true,
	"indomain_max":    true,
	"indomain_middle": true,
	"indomain_median": true,
	"indomain_random": true,
	"indomain_split":  true,
}

// SolverConfig is the per-request search configuration. It is constructed
// once from caller input, validated, and never mutated afterwards.
type SolverConfig struct {
	ProblemType     string  `json:"problemType"`
	Solver          string  `json:"solver"`
	SearchHeuristic string  `json:"searchHeuristic"`
	ValueChoice     string  `json:"valueChoice"`
	TimeLimitSec    float64 `json:"timeLimitSec"`
	MaxSolutions    int     `json:"maxSolutions"`
}

// Validate checks every field against the supported value sets. Unknown
// identifiers are rejected here, before any solver process is spawned.
func (c SolverConfig) Validate() error {
	if !validProblemTypes[c.ProblemType] {
		return Validationf("solverConfig.problemType",
			"must be one of %s, %s; got %q", ProblemTardiness, ProblemMaintenance, c.ProblemType)
	}
	if !validSolvers[c.Solver] {
		return Validationf("solverConfig.solver",
			"must be one of %s, %s, %s; got %q", SolverGecode, SolverChuffed, SolverORTools, c.Solver)
	}
	if !validHeuristics[c.SearchHeuristic] {
		return Validationf("solverConfig.searchHeuristic", "unsupported heuristic %q", c.SearchHeuristic)
	}
	if !validValueChoices[c.ValueChoice] {
		return Validationf("solverConfig.valueChoice", "unsupported value choice %q", c.ValueChoice)
	}
	if c.TimeLimitSec < 0 {
		return Validationf("solverConfig.timeLimitSec", "must be >= 0; got %v", c.TimeLimitSec)
	}
	if c.MaxSolutions < 1 {
		return Validationf("solverConfig.maxSolutions", "must be >= 1; got %d", c.MaxSolutions)
	}
	return nil
}
