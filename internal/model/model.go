// Package model owns the MiniZinc model templates and produces the concrete,
// per-request model variant with the solve directive substituted in.
package model

import (
	"embed"
	"fmt"
	"regexp"

	"github.com/jcastellanos/jobshopd/pkg/models"
)

//go:embed templates/*.mzn
var templates embed.FS

// Branching group and objective variable per variant. These names are part
// of the file-format contract with the engine and must match the templates.
const (
	searchVars         = "search_vars"
	tardinessObjective = "w"
	makespanObjective  = "END"
)

var solveStmt = regexp.MustCompile(`(?s)solve\b.*?;`)

// Template returns the read-only base model text for a problem variant.
func Template(problemType string) (string, error) {
	var name string
	switch problemType {
	case models.ProblemTardiness:
		name = "templates/jobshop_tardanza.mzn"
	case models.ProblemMaintenance:
		name = "templates/jobshop_mantenimiento.mzn"
	default:
		return "", models.Validationf("solverConfig.problemType", "no model template for %q", problemType)
	}
	data, err := templates.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read model template %s: %w", name, err)
	}
	return string(data), nil
}

// Directive builds the solve annotation for a configuration: the branching
// group, the configured heuristic and value choice, and the objective
// variable the variant minimizes.
func Directive(cfg models.SolverConfig) string {
	objective := tardinessObjective
	if cfg.ProblemType == models.ProblemMaintenance {
		objective = makespanObjective
	}
	return fmt.Sprintf("solve :: int_search(%s, %s, %s) minimize %s;",
		searchVars, cfg.SearchHeuristic, cfg.ValueChoice, objective)
}

// Configure produces a new model text with the first solve statement of the
// base template replaced by the directive for cfg. The base text is never
// modified; concurrent requests share it safely.
func Configure(cfg models.SolverConfig) (string, error) {
	base, err := Template(cfg.ProblemType)
	if err != nil {
		return "", err
	}
	loc := solveStmt.FindStringIndex(base)
	if loc == nil {
		return "", fmt.Errorf("model template for %s has no solve statement", cfg.ProblemType)
	}
	return base[:loc[0]] + Directive(cfg) + base[loc[1]:], nil
}
