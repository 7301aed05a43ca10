// Package schedule turns raw decision-variable bindings into the domain
// schedule representation and checks its consistency invariants.
package schedule

import (
	"fmt"

	"github.com/jcastellanos/jobshopd/internal/engine"
	"github.com/jcastellanos/jobshopd/internal/instance"
	"github.com/jcastellanos/jobshopd/pkg/models"
)

// Machine, job and operation identifiers are synthesized positionally
// (M1..Mtasks, J1..Jjobs, J{i}-{j}). This is a normalization convention of
// this service, not carried from engine output.

func machineID(col int) string { return fmt.Sprintf("M%d", col) }

func jobID(row int) string { return fmt.Sprintf("J%d", row) }

func opID(row, col int) string { return fmt.Sprintf("J%d-%d", row, col) }

func machines(tasks int) []models.Machine {
	out := make([]models.Machine, tasks)
	for j := 1; j <= tasks; j++ {
		out[j-1] = models.Machine{ID: machineID(j), Name: machineID(j)}
	}
	return out
}

// operations derives one Operation per (job, task) cell from start times and
// durations, with end = start + duration.
func operations(starts, durations [][]int, jobs, tasks int) []models.Operation {
	ops := make([]models.Operation, 0, jobs*tasks)
	for i := 1; i <= jobs; i++ {
		for j := 1; j <= tasks; j++ {
			start := float64(starts[i-1][j-1])
			dur := float64(durations[i-1][j-1])
			ops = append(ops, models.Operation{
				JobID:     jobID(i),
				MachineID: machineID(j),
				OpID:      opID(i, j),
				Start:     start,
				End:       start + dur,
				Duration:  dur,
			})
		}
	}
	return ops
}

// NormalizeTardiness maps the weighted-tardiness result variables (start
// matrix s, objective w) into a Schedule. The makespan is recomputed from
// operation ends; the engine objective is tardiness, not completion.
func NormalizeTardiness(b engine.Bindings, inst instance.Tardiness) (*models.Schedule, error) {
	starts, err := b.Int2D("s", inst.Jobs, inst.Tasks)
	if err != nil {
		return nil, err
	}
	w, err := b.Int("w")
	if err != nil {
		return nil, err
	}

	ops := operations(starts, inst.Durations, inst.Jobs, inst.Tasks)

	var makespan float64
	for _, op := range ops {
		if op.End > makespan {
			makespan = op.End
		}
	}

	// Per-job tardiness: completion is the latest end among the job's
	// operations, tardiness its positive excess over the due date.
	var total, maxTard float64
	var lateJobs int
	for i := 1; i <= inst.Jobs; i++ {
		var completion float64
		for j := 1; j <= inst.Tasks; j++ {
			end := float64(starts[i-1][j-1] + inst.Durations[i-1][j-1])
			if end > completion {
				completion = end
			}
		}
		tard := completion - float64(inst.DueDates[i-1])
		if tard <= 0 {
			continue
		}
		total += tard
		lateJobs++
		if tard > maxTard {
			maxTard = tard
		}
	}

	return &models.Schedule{
		Makespan:   makespan,
		Machines:   machines(inst.Tasks),
		Operations: ops,
		Stats: map[string]float64{
			"w":              float64(w),
			"tardanza_total": total,
			"jobs_tardios":   float64(lateJobs),
			"max_tardanza":   maxTard,
		},
	}, nil
}

// NormalizeMaintenance maps the maintenance-aware result variables (start
// matrix S, objective END) into a Schedule. END is the engine's
// authoritative makespan and is not recomputed.
func NormalizeMaintenance(b engine.Bindings, inst instance.Maintenance) (*models.Schedule, error) {
	starts, err := b.Int2D("S", inst.Jobs, inst.Tasks)
	if err != nil {
		return nil, err
	}
	end, err := b.Int("END")
	if err != nil {
		return nil, err
	}

	ops := operations(starts, inst.ProcTime, inst.Jobs, inst.Tasks)

	var windows []models.MaintenanceWindow
	var maintTime float64
	for m := 0; m < inst.Tasks; m++ {
		for k := 0; k < inst.MaxWindows; k++ {
			if !inst.MaintActive[m][k] {
				continue
			}
			ws := float64(inst.MaintStart[m][k])
			we := float64(inst.MaintEnd[m][k])
			dur := we - ws
			if dur < 0 {
				dur = 0
			}
			windows = append(windows, models.MaintenanceWindow{
				MachineID: machineID(m + 1),
				Start:     ws,
				End:       we,
				Duration:  dur,
			})
			maintTime += dur
		}
	}

	return &models.Schedule{
		Makespan:           float64(end),
		Machines:           machines(inst.Tasks),
		Operations:         ops,
		MaintenanceWindows: windows,
		Stats: map[string]float64{
			"maint_windows": float64(len(windows)),
			"maint_time":    maintTime,
		},
	}, nil
}
