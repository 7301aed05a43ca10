// Package models holds the shared contract types of the scheduling service:
// the solver configuration, the normalized schedule returned to callers, and
// the client-attributable error taxonomy.
package models

// Machine is one processing resource in a schedule. Ids are synthesized
// positionally by the normalizer (M1..Mn) and must be unique.
type Machine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Operation is a single (job, machine) processing step with its timing.
type Operation struct {
	JobID     string  `json:"jobId"`
	MachineID string  `json:"machineId"`
	OpID      string  `json:"opId"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Duration  float64 `json:"duration"`
}

// MaintenanceWindow is one active downtime slot on a machine. Present only
// for the maintenance-aware variant.
type MaintenanceWindow struct {
	MachineID string  `json:"machineId"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Duration  float64 `json:"duration"`
}

// Schedule is the normalized, validated solve result.
type Schedule struct {
	Makespan           float64             `json:"makespan"`
	Machines           []Machine           `json:"machines"`
	Operations         []Operation         `json:"operations"`
	MaintenanceWindows []MaintenanceWindow `json:"maintenanceWindows,omitempty"`
	Stats              map[string]float64  `json:"stats"`
}
